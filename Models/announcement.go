package Models

import (
	"time"

	"gorm.io/datatypes"
)

// Announcement is a broadcast message from an administrator to all
// employees or a named subset. Likes hold the employee ids that liked
// the message; replies are ordered and append-only.
type Announcement struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	AuthorID  string         `json:"author_id" gorm:"type:varchar(64)"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Audience  datatypes.JSON `json:"audience"` // employee ids; empty means everyone
	Likes     datatypes.JSON `json:"likes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Replies []AnnouncementReply `json:"replies" gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE"`
}

func (Announcement) TableName() string {
	return "announcements"
}

type AnnouncementReply struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	AnnouncementID uint      `json:"announcement_id" gorm:"index;not null"`
	AuthorID       string    `json:"author_id" gorm:"type:varchar(64)"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

func (AnnouncementReply) TableName() string {
	return "announcement_replies"
}
