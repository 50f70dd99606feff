package model

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

type SendMessageResponse struct {
	ID             int64  `json:"id"`
	ConversationID string `json:"conversation_id"`
}

type GetConversationsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type GetMessagesRequest struct {
	ConversationID string `path:"id"`
	Before         int64  `json:"before"`
	Limit          int    `json:"limit"`
}

type GetMessagesResponse struct {
	Messages []Message `json:"messages"`
}

type DeleteMessageRequest struct {
	ID int64 `path:"id"`
}

type DeleteMessageResponse struct{}
