package Controllers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"Monjez/Models"
	"Monjez/middleware"
)

// AnnouncementController handles broadcast messages, likes and replies.
type AnnouncementController struct {
	DB *gorm.DB
}

func NewAnnouncementController(db *gorm.DB) *AnnouncementController {
	return &AnnouncementController{DB: db}
}

type AnnouncementRequest struct {
	Title    string   `json:"title" validate:"required"`
	Body     string   `json:"body" validate:"required"`
	Audience []string `json:"audience"`
}

type ReplyRequest struct {
	Body string `json:"body" validate:"required"`
}

// GetAnnouncements lists announcements visible to the current employee:
// broadcast ones plus those naming the employee in the audience.
func (ctl *AnnouncementController) GetAnnouncements(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var announcements []Models.Announcement
	if err := ctl.DB.Preload("Replies").Order("created_at DESC").Find(&announcements).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve announcements"})
	}

	visible := make([]Models.Announcement, 0, len(announcements))
	for _, a := range announcements {
		if user.IsReviewer() || audienceIncludes(a.Audience, user.ID) {
			visible = append(visible, a)
		}
	}
	return c.JSON(visible)
}

// CreateAnnouncement publishes a message (admin only, via route).
func (ctl *AnnouncementController) CreateAnnouncement(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	audience, _ := json.Marshal(req.Audience)
	announcement := Models.Announcement{
		AuthorID: user.ID,
		Title:    req.Title,
		Body:     req.Body,
		Audience: datatypes.JSON(audience),
		Likes:    datatypes.JSON([]byte("[]")),
	}
	if err := ctl.DB.Create(&announcement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create announcement"})
	}

	Models.RecordAudit(user, Models.AuditCreate, "announcement", req.Title)
	return c.Status(fiber.StatusCreated).JSON(announcement)
}

// DeleteAnnouncement removes a message and its replies.
func (ctl *AnnouncementController) DeleteAnnouncement(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid announcement ID"})
	}

	var announcement Models.Announcement
	if err := ctl.DB.First(&announcement, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Announcement not found"})
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("announcement_id = ?", id).Delete(&Models.AnnouncementReply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&announcement).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete announcement"})
	}

	Models.RecordAudit(user, Models.AuditDelete, "announcement", announcement.Title)
	return c.JSON(fiber.Map{"message": "Announcement deleted successfully"})
}

// ToggleLike adds or removes the current employee's like.
func (ctl *AnnouncementController) ToggleLike(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid announcement ID"})
	}

	var announcement Models.Announcement
	if err := ctl.DB.First(&announcement, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Announcement not found"})
	}

	var likes []string
	_ = json.Unmarshal(announcement.Likes, &likes)
	found := false
	for i, likerID := range likes {
		if likerID == user.ID {
			likes = append(likes[:i], likes[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		likes = append(likes, user.ID)
	}

	data, _ := json.Marshal(likes)
	announcement.Likes = datatypes.JSON(data)
	if err := ctl.DB.Save(&announcement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update likes"})
	}
	return c.JSON(announcement)
}

// AddReply appends a threaded reply.
func (ctl *AnnouncementController) AddReply(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid announcement ID"})
	}

	var req ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	var announcement Models.Announcement
	if err := ctl.DB.First(&announcement, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Announcement not found"})
	}

	reply := Models.AnnouncementReply{
		AnnouncementID: announcement.ID,
		AuthorID:       user.ID,
		Body:           req.Body,
	}
	if err := ctl.DB.Create(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add reply"})
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

func audienceIncludes(audience datatypes.JSON, employeeID string) bool {
	var ids []string
	if err := json.Unmarshal(audience, &ids); err != nil || len(ids) == 0 {
		return true // broadcast
	}
	for _, id := range ids {
		if id == employeeID {
			return true
		}
	}
	return false
}
