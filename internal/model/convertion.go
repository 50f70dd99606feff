package model

import (
	"time"

	"github.com/immigrant-voices/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	role := string(user.Role)
	if !includeSensitive {
		role = ""
	}

	return User{
		ID:             user.ID,
		Name:           user.Name,
		Bio:            user.Bio,
		AvatarURL:      user.AvatarURL,
		CountryFrom:    user.CountryFrom,
		CountryNow:     user.CountryNow,
		Role:           role,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
	}
}

func ConvertStory(
	story *entity.Story, author User, tags []string,
	likesCount, commentsCount int, liked, bookmarked bool,
) Story {
	if story == nil {
		return Story{}
	}

	return Story{
		ID:              story.ID,
		Author:          author,
		Title:           story.Title,
		Slug:            story.Slug,
		Content:         story.Content,
		Excerpt:         story.Excerpt,
		Category:        story.Category,
		Tags:            tags,
		IsRepost:        story.IsRepost,
		OriginalStoryID: story.OriginalStoryID.String,
		RepostComment:   story.RepostComment,
		LikesCount:      likesCount,
		CommentsCount:   commentsCount,
		RepostsCount:    story.RepostsCount,
		Liked:           liked,
		Bookmarked:      bookmarked,
		PublishedAt:     story.PublishedAt.Format(DefaultTimeLayout),
	}
}

func ConvertComment(comment *entity.Comment, author User) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		StoryID:   comment.StoryID,
		Author:    author,
		Content:   comment.Content,
		ParentID:  comment.ParentID.String,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertNotification(notification *entity.Notification, actor User) Notification {
	if notification == nil {
		return Notification{}
	}

	return Notification{
		ID:        notification.ID,
		Actor:     actor,
		Kind:      string(notification.Kind),
		StoryID:   notification.StoryID.String,
		CommentID: notification.CommentID.String,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPoll(
	poll *entity.Poll, options []entity.PollOption, votedOptionID string,
) Poll {
	if poll == nil {
		return Poll{}
	}

	expiresAt := ""
	if poll.ExpiresAt.Valid {
		expiresAt = poll.ExpiresAt.Time.Format(DefaultTimeLayout)
	}

	clientOptions := []PollOption{}
	totalVotes := 0
	for i := range options {
		totalVotes += options[i].VotesCount
		clientOptions = append(clientOptions, PollOption{
			ID:           options[i].ID,
			Content:      options[i].Content,
			DisplayOrder: options[i].DisplayOrder,
			VotesCount:   options[i].VotesCount,
		})
	}

	return Poll{
		ID:            poll.ID,
		StoryID:       poll.StoryID,
		Question:      poll.Question,
		ExpiresAt:     expiresAt,
		Options:       clientOptions,
		TotalVotes:    totalVotes,
		VotedOptionID: votedOptionID,
	}
}

func ConvertTag(tag *entity.Tag) Tag {
	if tag == nil {
		return Tag{}
	}

	return Tag{
		Name:          tag.Name,
		UsageCount:    tag.UsageCount,
		TrendingScore: tag.TrendingScore,
	}
}

func ConvertCommunity(community *entity.Community, joined bool) Community {
	if community == nil {
		return Community{}
	}

	return Community{
		ID:           community.ID,
		Handle:       community.Handle,
		DisplayName:  community.DisplayName,
		Introduction: community.Introduction,
		CreatedBy:    community.CreatedBy,
		MemberCount:  community.MemberCount,
		Joined:       joined,
	}
}

func ConvertJob(job *entity.Job, postedBy User) Job {
	if job == nil {
		return Job{}
	}

	return Job{
		ID:          job.ID,
		PostedBy:    postedBy,
		Title:       job.Title,
		Description: job.Description,
		Company:     job.Company,
		Location:    job.Location,
		Category:    job.Category,
		Salary:      job.Salary,
		IsOpen:      job.IsOpen,
		CreatedAt:   job.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertJobApplication(application *entity.JobApplication, applicant User) JobApplication {
	if application == nil {
		return JobApplication{}
	}

	return JobApplication{
		ID:          application.ID,
		JobID:       application.JobID,
		Applicant:   applicant,
		CoverLetter: application.CoverLetter,
		Status:      string(application.Status),
		CreatedAt:   application.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertConversation(conversation *entity.Conversation, participant User) Conversation {
	if conversation == nil {
		return Conversation{}
	}

	return Conversation{
		ID:            conversation.ID,
		Participant:   participant,
		LastMessageAt: conversation.LastMessageAt.Format(DefaultTimeLayout),
	}
}

func ConvertMessage(message *entity.Message) Message {
	if message == nil {
		return Message{}
	}

	return Message{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Content:        message.Content,
		CreatedAt:      message.CreatedAt.Format(DefaultTimeLayout),
	}
}
