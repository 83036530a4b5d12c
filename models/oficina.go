package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Oficina represents a receiving office (receptoría judicial), the tenant
// boundary. Every domain row carries its OficinaID and every query filters
// by it.
type Oficina struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Nombre string `gorm:"not null" json:"nombre"`
	Email  string `gorm:"not null;uniqueIndex" json:"email"`
	Slug   string `gorm:"not null;uniqueIndex" json:"slug"`

	// Jurisdiction info shown on generated documents
	Comuna    *string `json:"comuna,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`

	Users []User `gorm:"foreignKey:OficinaID" json:"users,omitempty"`
}

// BeforeCreate hook to generate UUID and slug
func (o *Oficina) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Slug == "" {
		o.Slug = generateSlug(tx, o.Nombre)
	}
	return nil
}

// generateSlug creates a URL-friendly slug from the office name
func generateSlug(tx *gorm.DB, nombre string) string {
	slug := strings.ToLower(nombre)
	slug = strings.ReplaceAll(slug, " ", "-")

	// Keep only alphanumeric and hyphens
	reg := regexp.MustCompile(`[^a-z0-9-]+`)
	slug = reg.ReplaceAllString(slug, "")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > 50 {
		slug = slug[:50]
		slug = strings.TrimRight(slug, "-")
	}

	// Ensure uniqueness
	originalSlug := slug
	counter := 1
	for {
		var count int64
		tx.Model(&Oficina{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			break
		}
		slug = originalSlug + "-" + strconv.Itoa(counter)
		counter++
	}

	return slug
}

// TableName specifies the table name for Oficina model
func (Oficina) TableName() string {
	return "oficinas"
}
