package model

type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Bio            string `json:"bio,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	CountryFrom    string `json:"country_from,omitempty"`
	CountryNow     string `json:"country_now,omitempty"`
	Role           string `json:"role,omitempty"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
}

type Story struct {
	ID       string `json:"id"`
	Author   User   `json:"author"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt,omitempty"`
	Category string `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	IsRepost        bool   `json:"is_repost,omitempty"`
	OriginalStoryID string `json:"original_story_id,omitempty"`
	RepostComment   string `json:"repost_comment,omitempty"`

	LikesCount    int `json:"likes_count"`
	CommentsCount int `json:"comments_count"`
	RepostsCount  int `json:"reposts_count"`

	Liked      bool `json:"liked,omitempty"`
	Bookmarked bool `json:"bookmarked,omitempty"`

	PublishedAt string `json:"published_at"`
}

type Comment struct {
	ID        string `json:"id"`
	StoryID   string `json:"story_id"`
	Author    User   `json:"author"`
	Content   string `json:"content"`
	ParentID  string `json:"parent_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

type Notification struct {
	ID        string `json:"id"`
	Actor     User   `json:"actor"`
	Kind      string `json:"kind"`
	StoryID   string `json:"story_id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

type Poll struct {
	ID         string       `json:"id"`
	StoryID    string       `json:"story_id"`
	Question   string       `json:"question"`
	ExpiresAt  string       `json:"expires_at,omitempty"`
	Options    []PollOption `json:"options"`
	TotalVotes int          `json:"total_votes"`

	// The option the caller voted for, empty when anonymous or not voted.
	VotedOptionID string `json:"voted_option_id,omitempty"`
}

type PollOption struct {
	ID           string `json:"id"`
	Content      string `json:"content"`
	DisplayOrder int    `json:"display_order"`
	VotesCount   int    `json:"votes_count"`
}

type Tag struct {
	Name          string `json:"name"`
	UsageCount    int    `json:"usage_count"`
	TrendingScore int    `json:"trending_score,omitempty"`
}

type Community struct {
	ID           string `json:"id"`
	Handle       string `json:"handle"`
	DisplayName  string `json:"display_name"`
	Introduction string `json:"introduction,omitempty"`
	CreatedBy    string `json:"created_by"`
	MemberCount  int    `json:"member_count"`
	Joined       bool   `json:"joined,omitempty"`
}

type CommunityStats struct {
	CommunityID string `json:"community_id"`
	Date        string `json:"date"`
	MemberCount int    `json:"member_count"`
	StoryCount  int    `json:"story_count"`
}

type Job struct {
	ID          string `json:"id"`
	PostedBy    User   `json:"posted_by"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Category    string `json:"category,omitempty"`
	Salary      string `json:"salary,omitempty"`
	IsOpen      bool   `json:"is_open"`
	CreatedAt   string `json:"created_at"`
}

type JobApplication struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	Applicant   User   `json:"applicant"`
	CoverLetter string `json:"cover_letter"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type Conversation struct {
	ID            string `json:"id"`
	Participant   User   `json:"participant"`
	LastMessageAt string `json:"last_message_at"`
}

type Message struct {
	ID             int64  `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}
