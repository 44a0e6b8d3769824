package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/pkg/logger"
)

type VoucherRepository interface {
	Create(voucher *model.Voucher) error
	FindAll() ([]model.Voucher, error)
	FindByID(id uint) (*model.Voucher, error)
	FindByCode(code string) (*model.Voucher, error)
	CodeExists(code string) (bool, error)
	Update(voucher *model.Voucher) error
	Delete(id uint) error
}

type voucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Create(voucher *model.Voucher) error {
	logger.Debug("Creating voucher in database", map[string]interface{}{
		"code": voucher.Code,
		"type": voucher.Type,
	})

	if err := r.db.Create(voucher).Error; err != nil {
		logger.Error("Failed to create voucher in database", err, map[string]interface{}{
			"code": voucher.Code,
		})
		return err
	}
	return nil
}

func (r *voucherRepository) FindAll() ([]model.Voucher, error) {
	var vouchers []model.Voucher
	if err := r.db.Order("created_at DESC").Find(&vouchers).Error; err != nil {
		logger.Error("Failed to find vouchers in database", err)
		return nil, err
	}
	return vouchers, nil
}

func (r *voucherRepository) FindByID(id uint) (*model.Voucher, error) {
	var voucher model.Voucher
	if err := r.db.First(&voucher, id).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) FindByCode(code string) (*model.Voucher, error) {
	var voucher model.Voucher
	if err := r.db.Where("code = ?", code).First(&voucher).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) CodeExists(code string) (bool, error) {
	var voucher model.Voucher
	err := r.db.Select("id").Where("code = ?", code).First(&voucher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *voucherRepository) Update(voucher *model.Voucher) error {
	if err := r.db.Save(voucher).Error; err != nil {
		logger.Error("Failed to update voucher in database", err, map[string]interface{}{
			"voucher_id": voucher.ID,
		})
		return err
	}
	return nil
}

func (r *voucherRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Voucher{}, id).Error; err != nil {
		logger.Error("Failed to delete voucher from database", err, map[string]interface{}{
			"voucher_id": id,
		})
		return err
	}
	return nil
}
