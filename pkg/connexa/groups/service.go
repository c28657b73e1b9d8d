package groups

import (
	"errors"
	"strings"
	"time"

	"github.com/connexa/connexa/pkg/connexa/models"
	"gorm.io/gorm"
)

// Domain errors surfaced by the group service. Handlers translate these
// to HTTP status codes.
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrAlreadyMember      = errors.New("already a member of this group")
	ErrNotAMember         = errors.New("not a member of this group")
	ErrCreatorCannotLeave = errors.New("group creator cannot leave their own group")
	ErrNotGroupCreator    = errors.New("only the group creator may delete the group")
)

// Service enforces the study-group lifecycle rules on top of the store
type Service struct {
	db *gorm.DB
}

// NewService creates a new group service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateGroupInput carries the validated fields for a new group
type CreateGroupInput struct {
	Name        string
	Description string
	Subject     string
}

// ListFilters narrows the group listing. Filters compose with AND.
type ListFilters struct {
	Subject   string // case-insensitive substring match on subject
	CreatedBy uint   // restrict to groups created by this user
	MemberOf  bool   // restrict to groups the viewer is an active member of
}

// GroupSummary is one row of the listing projection
type GroupSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatorName string    `json:"creator_name"`
	MemberCount int64     `json:"member_count"`
	IsMember    *bool     `json:"is_member,omitempty"`
}

// Member is one active member in the group detail projection
type Member struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	FullName   string    `json:"full_name"`
	CourseName *string   `json:"course_name"`
	JoinedAt   time.Time `json:"joined_at"`
}

// GroupDetail is the full group record with its active members
type GroupDetail struct {
	models.StudyGroup
	CreatorName string   `json:"creator_name"`
	Members     []Member `json:"members"`
	MemberCount int      `json:"member_count"`
}

// Create persists a new active group owned by creatorID
func (s *Service) Create(input CreateGroupInput, creatorID uint) (*models.StudyGroup, error) {
	group := models.StudyGroup{
		Name:        input.Name,
		Description: input.Description,
		Subject:     input.Subject,
		CreatedByID: creatorID,
		IsActive:    true,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete retires a group. The row stays; only is_active flips and
// updated_at is refreshed. Only the creator may delete, and deleting a
// group that is already gone reports ErrGroupNotFound so callers can
// detect redundant calls.
func (s *Service) Delete(groupID, requesterID uint) error {
	var group models.StudyGroup
	if err := s.db.Where("id = ? AND is_active = ?", groupID, true).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	if group.CreatedByID != requesterID {
		return ErrNotGroupCreator
	}

	result := s.db.Model(&models.StudyGroup{}).
		Where("id = ? AND is_active = ?", groupID, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// List returns active groups matching the filters, newest first. Each row
// carries the creator's display name and a live count of active members;
// when a viewer is known, it also carries whether the viewer is currently
// an active member. The MemberOf filter is a no-op for anonymous viewers.
func (s *Service) List(filters ListFilters, viewerID *uint) ([]GroupSummary, error) {
	q := s.db.Model(&models.StudyGroup{}).Where("study_groups.is_active = ?", true)

	if filters.Subject != "" {
		q = q.Where("LOWER(subject) LIKE ?", "%"+strings.ToLower(filters.Subject)+"%")
	}
	if filters.CreatedBy != 0 {
		q = q.Where("created_by_id = ?", filters.CreatedBy)
	}
	if filters.MemberOf && viewerID != nil {
		q = q.Joins("JOIN group_members vm ON vm.group_id = study_groups.id AND vm.user_id = ? AND vm.is_active = ?",
			*viewerID, true)
	}

	var groups []models.StudyGroup
	if err := q.Preload("CreatedBy").Order("study_groups.created_at DESC").Find(&groups).Error; err != nil {
		return nil, err
	}

	summaries := make([]GroupSummary, len(groups))
	for i, g := range groups {
		var memberCount int64
		if err := s.db.Model(&models.GroupMember{}).
			Where("group_id = ? AND is_active = ?", g.ID, true).
			Count(&memberCount).Error; err != nil {
			return nil, err
		}

		summary := GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			Subject:     g.Subject,
			CreatedBy:   g.CreatedByID,
			CreatedAt:   g.CreatedAt,
			UpdatedAt:   g.UpdatedAt,
			CreatorName: g.CreatedBy.FullName,
			MemberCount: memberCount,
		}

		if viewerID != nil {
			var viewerRows int64
			if err := s.db.Model(&models.GroupMember{}).
				Where("group_id = ? AND user_id = ? AND is_active = ?", g.ID, *viewerID, true).
				Count(&viewerRows).Error; err != nil {
				return nil, err
			}
			isMember := viewerRows > 0
			summary.IsMember = &isMember
		}

		summaries[i] = summary
	}

	return summaries, nil
}

// GetByID returns the full group record with its active members ordered
// oldest-joined-first. Inactive groups report ErrGroupNotFound.
func (s *Service) GetByID(groupID uint) (*GroupDetail, error) {
	var group models.StudyGroup
	if err := s.db.Preload("CreatedBy").
		Where("id = ? AND is_active = ?", groupID, true).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	var memberships []models.GroupMember
	if err := s.db.Preload("User.Course").
		Where("group_id = ? AND is_active = ?", groupID, true).
		Order("joined_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	members := make([]Member, len(memberships))
	for i, m := range memberships {
		member := Member{
			ID:       m.ID,
			UserID:   m.UserID,
			FullName: m.User.FullName,
			JoinedAt: m.JoinedAt,
		}
		if m.User.Course != nil {
			name := m.User.Course.Name
			member.CourseName = &name
		}
		members[i] = member
	}

	return &GroupDetail{
		StudyGroup:  group,
		CreatorName: group.CreatedBy.FullName,
		Members:     members,
		MemberCount: len(members),
	}, nil
}

// Join adds userID to the group. A previously-left membership is
// reactivated with a fresh joined_at rather than duplicated; joining
// while already an active member reports ErrAlreadyMember without
// touching the row. The check-then-act sequence runs in one transaction,
// and the unique (group_id, user_id) index backstops concurrent joins.
func (s *Service) Join(groupID, userID uint) (*models.GroupMember, error) {
	var membership models.GroupMember

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var group models.StudyGroup
		if err := tx.Where("id = ? AND is_active = ?", groupID, true).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&membership).Error
		switch {
		case err == nil:
			if membership.IsActive {
				return ErrAlreadyMember
			}
			// Reactivate; this counts as a fresh join event
			membership.IsActive = true
			membership.JoinedAt = time.Now()
			return tx.Save(&membership).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			membership = models.GroupMember{
				GroupID:  groupID,
				UserID:   userID,
				JoinedAt: time.Now(),
				IsActive: true,
			}
			return tx.Create(&membership).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	return &membership, nil
}

// Leave retires userID's membership. Checks run in order: the group must
// be active, the requester must not be its creator (creators delete the
// group instead), and an active membership must exist. joined_at is
// preserved for history; only is_active flips.
func (s *Service) Leave(groupID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.StudyGroup
		if err := tx.Where("id = ? AND is_active = ?", groupID, true).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		if group.CreatedByID == userID {
			return ErrCreatorCannotLeave
		}

		result := tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND user_id = ? AND is_active = ?", groupID, userID, true).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotAMember
		}
		return nil
	})
}
