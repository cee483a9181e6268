package dao

import (
	"errors"

	"gorm.io/gorm"

	"mall-commission-api/internal/dal"
	mainmodel "mall-commission-api/internal/model/main"
)

type ProductDao struct{}

func NewProductDao() *ProductDao { return &ProductDao{} }

func (r *ProductDao) GetProduct(id uint64) (*mainmodel.Product, error) {
	var p mainmodel.Product
	err := dal.MainDB.Where("id = ? AND status = ?", id, 1).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductDao) GetSku(id uint64) (*mainmodel.ProductSku, error) {
	var s mainmodel.ProductSku
	err := dal.MainDB.Where("id = ? AND status = ?", id, 1).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
