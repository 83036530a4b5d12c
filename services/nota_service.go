package services

import (
	"errors"
	"strings"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var notaPolicy = bluemonday.UGCPolicy()

// CreateNota appends a note to a rol. Content is sanitized before storage
// and immutable afterwards.
func CreateNota(db *gorm.DB, oficinaID, rolID, userID, contenido string) (*models.Nota, error) {
	rol, err := GetRolScoped(db, oficinaID, rolID)
	if err != nil {
		return nil, err
	}

	contenido = strings.TrimSpace(notaPolicy.Sanitize(contenido))
	if contenido == "" {
		return nil, NewValidationError("el contenido de la nota es obligatorio")
	}

	nota := models.Nota{
		OficinaID:   oficinaID,
		RolCausaID:  rol.ID,
		Contenido:   contenido,
		CreatedByID: userID,
	}
	if err := db.Create(&nota).Error; err != nil {
		return nil, err
	}

	return &nota, nil
}

// DeleteNota removes a note within the given office
func DeleteNota(db *gorm.DB, oficinaID, notaID string) (*models.Nota, error) {
	var nota models.Nota
	err := db.Where("oficina_id = ? AND id = ?", oficinaID, notaID).First(&nota).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotaNotFound
		}
		return nil, err
	}

	if err := db.Delete(&nota).Error; err != nil {
		return nil, err
	}
	return &nota, nil
}
