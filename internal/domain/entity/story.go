package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StoryCategory classifies community stories
type StoryCategory string

const (
	StoryCategoryPersonal    StoryCategory = "personal_story"
	StoryCategoryAdvice      StoryCategory = "advice"
	StoryCategoryEducational StoryCategory = "educational"
	StoryCategorySupport     StoryCategory = "support"
	StoryCategoryAwareness   StoryCategory = "awareness"
)

const (
	MaxStoryTitle     = 100
	MaxStoryContent   = 5000
	MaxCommentContent = 500
)

func ParseStoryCategory(s string) (StoryCategory, error) {
	switch c := StoryCategory(s); c {
	case StoryCategoryPersonal, StoryCategoryAdvice, StoryCategoryEducational,
		StoryCategorySupport, StoryCategoryAwareness:
		return c, nil
	}
	return "", fmt.Errorf("unknown story category %q", s)
}

// Story is a community post. Likes and comments are child records.
type Story struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AuthorID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"author_id"`
	Title     string        `gorm:"type:varchar(100);not null" json:"title"`
	Content   string        `gorm:"type:text;not null" json:"content"`
	Category  StoryCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	CreatedAt time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Aggregates filled by the repository, not stored.
	LikeCount    int64 `gorm:"->;-:migration" json:"like_count"`
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`

	// Relationships
	Author   *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []StoryComment `gorm:"foreignKey:StoryID" json:"comments,omitempty"`
}

func (Story) TableName() string {
	return "stories"
}

// StoryLike is present while the user likes the story. The primary key makes
// a like a set membership rather than a counter.
type StoryLike struct {
	StoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"story_id"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LikedAt time.Time `gorm:"autoCreateTime" json:"liked_at"`
}

func (StoryLike) TableName() string {
	return "story_likes"
}

// StoryComment is append-only.
type StoryComment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StoryID     uuid.UUID `gorm:"type:uuid;not null;index" json:"story_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Content     string    `gorm:"type:varchar(500);not null" json:"content"`
	IsAnonymous bool      `gorm:"not null;default:false" json:"is_anonymous"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (StoryComment) TableName() string {
	return "story_comments"
}
