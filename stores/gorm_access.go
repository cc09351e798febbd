package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-pms/models"
)

type gormAccess struct{ db *gorm.DB }

func (r gormAccess) EnsureProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
		return models.Profile{}, translate(err)
	}
	var stored models.Profile
	err := db.First(&stored, "id = ?", p.ID).Error
	return stored, translate(err)
}

func (r gormAccess) GetProfile(ctx context.Context, id uuid.UUID) (models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, translate(err)
}

func (r gormAccess) ProfileByEmail(ctx context.Context, email string) (models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&p).Error
	return p, translate(err)
}

func (r gormAccess) Roles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error
	return roles, translate(err)
}

func (r gormAccess) RoleByName(ctx context.Context, name models.RoleName) (models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	return role, translate(err)
}

// SeedRoles makes sure every known role exists, matching on name.
func (r gormAccess) SeedRoles(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, name := range models.AllRoles {
		role := models.Role{Name: name, Description: roleDescriptions[name]}
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return translate(err)
		}
	}
	return nil
}

func (r gormAccess) Assignments(ctx context.Context, f AssignmentFilter) ([]models.UserRole, error) {
	tx := r.db.WithContext(ctx).Preload("Role").Preload("Profile").Preload("Hotel")
	if f.UserID != nil {
		tx = tx.Where("user_id = ?", *f.UserID)
	}
	if f.HotelID != nil {
		tx = tx.Where("hotel_id = ?", *f.HotelID)
	}
	var items []models.UserRole
	err := tx.Order("created_at ASC").Order("id ASC").Find(&items).Error
	return items, translate(err)
}

func (r gormAccess) GetAssignment(ctx context.Context, id uuid.UUID) (models.UserRole, error) {
	var ur models.UserRole
	err := r.db.WithContext(ctx).Preload("Role").Preload("Profile").Preload("Hotel").First(&ur, "id = ?", id).Error
	return ur, translate(err)
}

func (r gormAccess) Assign(ctx context.Context, ur *models.UserRole) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(ur).Error)
}

func (r gormAccess) Revoke(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.UserRole{}))
}

func (r gormAccess) CountAssignments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.UserRole{}).Count(&n).Error
	return n, translate(err)
}
