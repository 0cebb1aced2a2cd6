package ledger

import (
	"context"
	"math"

	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"
	"estate-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CreateUnitInput struct {
	Name           string  `json:"name"`
	Floor          string  `json:"floor"`
	Building       string  `json:"building"`
	Area           string  `json:"area"`
	UnitType       string  `json:"unitType"`
	Notes          string  `json:"notes"`
	TotalPrice     float64 `json:"totalPrice"`
	PartnerGroupID string  `json:"partnerGroupId"`
}

// UnitResult is a created unit with its ownership snapshot.
type UnitResult struct {
	domain.Unit
	Partners []domain.UnitPartner `json:"partners"`
}

const percentTolerance = 1e-9

// CreateUnit inserts a unit and copies its partner group's split onto it.
func (s *Service) CreateUnit(ctx context.Context, in CreateUnitInput) (*UnitResult, error) {
	if missing := validation.FirstMissing("name", in.Name, "floor", in.Floor, "building", in.Building, "partnerGroupId", in.PartnerGroupID); missing != "" {
		return nil, apperror.Validation("Incomplete unit data: " + missing + " is required")
	}
	if in.TotalPrice <= 0 {
		return nil, apperror.Validation("Incomplete unit data: totalPrice must be a positive number")
	}
	code := validation.UnitCode(in.Building, in.Floor, in.Name)

	var result UnitResult
	err := s.write(ctx, func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&domain.Unit{}).Where("code = ?", code).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return apperror.BusinessRule("Unit with this code already exists")
		}

		if _, err := find[domain.PartnerGroup](tx, in.PartnerGroupID, "Partner group not found"); err != nil {
			return err
		}
		var links []domain.PartnerGroupLink
		if err := tx.Where("group_id = ?", in.PartnerGroupID).Find(&links).Error; err != nil {
			return err
		}
		var sum float64
		for _, l := range links {
			sum += l.Percent
		}
		if len(links) == 0 || math.Abs(sum-100) > percentTolerance {
			return apperror.BusinessRule("Partner group percentages do not sum to 100")
		}

		result.Unit = domain.Unit{
			Code:           code,
			Name:           in.Name,
			Status:         domain.UnitAvailable,
			Area:           in.Area,
			Floor:          in.Floor,
			Building:       in.Building,
			Notes:          in.Notes,
			TotalPrice:     in.TotalPrice,
			UnitType:       in.UnitType,
			PartnerGroupID: in.PartnerGroupID,
		}
		if err := tx.Create(&result.Unit).Error; err != nil {
			return err
		}

		result.Partners = make([]domain.UnitPartner, 0, len(links))
		for _, l := range links {
			result.Partners = append(result.Partners, domain.UnitPartner{
				UnitID:    result.Unit.ID,
				PartnerID: l.PartnerID,
				Percent:   l.Percent,
			})
		}
		if err := tx.Create(&result.Partners).Error; err != nil {
			return err
		}

		return audit(tx, "Unit created", map[string]interface{}{
			"unitId": result.Unit.ID, "code": code, "partnerGroupId": in.PartnerGroupID,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("unit_id", result.Unit.ID).Str("code", code).Msg("Unit created")
	return &result, nil
}

// DeleteUnit removes an unsold unit and its ownership snapshot.
func (s *Service) DeleteUnit(ctx context.Context, id string) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		unit, err := find[domain.Unit](forUpdate(tx), id, "Unit not found")
		if err != nil {
			return err
		}
		var refs int64
		if err := tx.Model(&domain.Contract{}).Where("unit_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return apperror.BusinessRule("Unit is referenced by a contract and cannot be deleted")
		}
		if err := tx.Where("unit_id = ?", id).Delete(&domain.UnitPartner{}).Error; err != nil {
			return err
		}
		if err := tx.Where("unit_id = ?", id).Delete(&domain.Installment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(unit).Error; err != nil {
			return err
		}
		return audit(tx, "Unit deleted", map[string]interface{}{"unitId": id, "code": unit.Code})
	})
}
