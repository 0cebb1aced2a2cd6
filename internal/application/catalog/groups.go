package catalog

import (
	"context"
	"fmt"
	"math"

	"estate-backend/internal/application/reports"
	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/apperror"
	"estate-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

// PartnerGroupInput creates or edits a group. A nil Partners leaves the links as they are.
type PartnerGroupInput struct {
	Name     string                `json:"name"`
	Partners []domain.PartnerShare `json:"partners"`
}

func (s *Service) ListPartnerGroups(ctx context.Context) ([]domain.PartnerGroup, error) {
	groups, err := list[domain.PartnerGroup](ctx, s.DB, "created_at")
	if err != nil {
		return nil, err
	}
	if err := reports.AttachPartners(s.DB.WithContext(ctx), groups); err != nil {
		return nil, apperror.Storage(err)
	}
	return groups, nil
}

// checkShares requires distinct existing partners whose percents sum to 100.
func checkShares(tx *gorm.DB, shares []domain.PartnerShare) error {
	if len(shares) == 0 {
		return apperror.Validation("A partner group needs at least one partner")
	}
	seen := make(map[string]bool, len(shares))
	var sum float64
	for _, sh := range shares {
		if sh.PartnerID == "" || sh.Percent <= 0 {
			return apperror.Validation("Each partner needs a partnerId and a positive percent")
		}
		if seen[sh.PartnerID] {
			return apperror.Validation(fmt.Sprintf("Partner %s is listed twice", sh.PartnerID))
		}
		seen[sh.PartnerID] = true
		sum += sh.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		return apperror.BusinessRule("Partner group percentages do not sum to 100")
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	var n int64
	if err := tx.Model(&domain.Partner{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return err
	}
	if int(n) != len(ids) {
		return apperror.NotFound("Partner not found")
	}
	return nil
}

func writeLinks(tx *gorm.DB, groupID string, shares []domain.PartnerShare) error {
	if err := tx.Where("group_id = ?", groupID).Delete(&domain.PartnerGroupLink{}).Error; err != nil {
		return err
	}
	links := make([]domain.PartnerGroupLink, 0, len(shares))
	for _, sh := range shares {
		links = append(links, domain.PartnerGroupLink{GroupID: groupID, PartnerID: sh.PartnerID, Percent: sh.Percent})
	}
	return tx.Create(&links).Error
}

func uniqueGroupName(tx *gorm.DB, name, exceptID string) error {
	q := tx.Model(&domain.PartnerGroup{}).Where("name = ?", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	return refused(q, "A partner group with this name already exists")
}

func (s *Service) CreatePartnerGroup(ctx context.Context, in PartnerGroupInput) (*domain.PartnerGroup, error) {
	if validation.IsBlank(in.Name) {
		return nil, apperror.Validation("Partner group name is required")
	}
	group := domain.PartnerGroup{Name: in.Name}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := uniqueGroupName(tx, in.Name, ""); err != nil {
			return err
		}
		if err := checkShares(tx, in.Partners); err != nil {
			return err
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return writeLinks(tx, group.ID, in.Partners)
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	group.Partners = in.Partners
	return &group, nil
}

// UpdatePartnerGroup renames the group and/or rewrites its links. Units keep the split
// they were created with.
func (s *Service) UpdatePartnerGroup(ctx context.Context, id string, in PartnerGroupInput) (*domain.PartnerGroup, error) {
	var group *domain.PartnerGroup
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if group, err = get[domain.PartnerGroup](tx, id, "Partner group not found"); err != nil {
			return err
		}
		if !validation.IsBlank(in.Name) && in.Name != group.Name {
			if err := uniqueGroupName(tx, in.Name, id); err != nil {
				return err
			}
			if err := tx.Model(group).Update("name", in.Name).Error; err != nil {
				return err
			}
			group.Name = in.Name
		}
		if in.Partners != nil {
			if err := checkShares(tx, in.Partners); err != nil {
				return err
			}
			if err := writeLinks(tx, id, in.Partners); err != nil {
				return err
			}
		}
		groups := []domain.PartnerGroup{*group}
		if err := reports.AttachPartners(tx, groups); err != nil {
			return err
		}
		*group = groups[0]
		return nil
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return group, nil
}

// DeletePartnerGroup refuses groups that units were created from.
func (s *Service) DeletePartnerGroup(ctx context.Context, id string) error {
	return remove(ctx, s.DB, id, "Partner group not found", func(tx *gorm.DB, _ *domain.PartnerGroup) error {
		if err := refused(tx.Model(&domain.Unit{}).Where("partner_group_id = ?", id),
			"Partner group is used by units and cannot be deleted"); err != nil {
			return err
		}
		return tx.Where("group_id = ?", id).Delete(&domain.PartnerGroupLink{}).Error
	})
}
