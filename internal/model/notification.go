package model

type GetNotificationsRequest struct {
	UnreadOnly bool `json:"unread_only"`
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type GetUnreadCountRequest struct{}

type GetUnreadCountResponse struct {
	Count int64 `json:"count"`
}

type ReadNotificationRequest struct {
	ID string `path:"id"`
}

type ReadNotificationResponse struct{}

type ReadAllNotificationsRequest struct{}

type ReadAllNotificationsResponse struct{}

type DeleteNotificationRequest struct {
	ID string `path:"id"`
}

type DeleteNotificationResponse struct{}
