package model

import (
	"time"
)

type PostCategory string

const (
	PostQuestion        PostCategory = "question"
	PostDiscussion      PostCategory = "discussion"
	PostProjectShowcase PostCategory = "project-showcase"
	PostMentorship      PostCategory = "mentorship"
	PostEcoAction       PostCategory = "eco-action"
)

// swagger:model Post
type Post struct {
	UUIDBase
	AuthorID uint         `gorm:"index;type:bigint unsigned;not null" json:"authorId"`
	Author   User         `gorm:"foreignKey:AuthorID" json:"author"`
	Title    string       `gorm:"size:255;not null" json:"title"`
	Content  string       `gorm:"type:text;not null" json:"content"`
	Category PostCategory `gorm:"type:enum('question','discussion','project-showcase','mentorship','eco-action');not null" json:"category"`
	Tags     string       `gorm:"size:255" json:"-"`
	Views    int          `gorm:"default:0" json:"views"`
	IsPinned bool         `gorm:"default:false" json:"isPinned"`
	IsSolved bool         `gorm:"default:false" json:"isSolved"`
	Replies  []Reply      `gorm:"foreignKey:PostID" json:"replies"`
}

func (Post) TableName() string {
	return "posts"
}

type Reply struct {
	UUIDBase
	PostID   string `gorm:"index;type:varchar(36);not null" json:"postId"`
	AuthorID uint   `gorm:"index;type:bigint unsigned;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (Reply) TableName() string {
	return "replies"
}

// UpvoteTarget 点赞目标类型
const (
	UpvotePost  = "post"
	UpvoteReply = "reply"
)

// PostUpvote 点赞集合，(user, type, content) 唯一，切换点赞 = 存在则删、否则插
type PostUpvote struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_upvote;type:bigint unsigned" json:"userId"`
	ContentType string    `gorm:"uniqueIndex:idx_user_upvote;size:20" json:"contentType"` // post, reply
	ContentID   string    `gorm:"uniqueIndex:idx_user_upvote;size:36" json:"contentId"`
}

func (PostUpvote) TableName() string {
	return "post_upvotes"
}
