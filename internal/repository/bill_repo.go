package repository

import (
	"context"
	"errors"

	"arthavidhi-backend/internal/models"

	"gorm.io/gorm"
)

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

// Expose DB if needed
func (r *BillRepository) DB() *gorm.DB {
	return r.db
}

// LastCreated returns the most recently created bill, ties broken by highest
// id. Returns nil without error when no bills exist yet.
func (r *BillRepository) LastCreated(ctx context.Context) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// CreateWithItems inserts the bill and its items in a single transaction.
// The caller populates bill.Items; item bill ids are filled in on insert.
func (r *BillRepository) CreateWithItems(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

// GetWithItems fetches a bill and its line items by id.
func (r *BillRepository) GetWithItems(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&bill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// ListWithItems returns all bills with their items, newest first.
func (r *BillRepository) ListWithItems(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&bills).Error
	return bills, err
}

// UpdateWithItems rewrites the bill's editable columns and replaces its line
// items with bill.Items, all in one transaction. Invoice number, status and
// owner keep their stored values.
func (r *BillRepository) UpdateWithItems(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := map[string]any{
			"client_name":       bill.ClientName,
			"client_address":    bill.ClientAddress,
			"client_phone":      bill.ClientPhone,
			"client_pan_number": bill.ClientPanNumber,
			"bill_date":         bill.BillDate,
			"due_date":          bill.DueDate,
			"discount":          bill.Discount,
		}
		if err := tx.Model(&models.Bill{}).Where("id = ?", bill.ID).Updates(cols).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillItem{}).Error; err != nil {
			return err
		}
		for i := range bill.Items {
			bill.Items[i].ID = 0
			bill.Items[i].BillID = bill.ID
		}
		return tx.Create(&bill.Items).Error
	})
}

// UpdateStatus persists a new status and reports whether the bill existed.
func (r *BillRepository) UpdateStatus(ctx context.Context, id uint, status models.BillStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Bill{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteWithItems removes the bill and all of its items atomically.
func (r *BillRepository) DeleteWithItems(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", id).Delete(&models.BillItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bill).Error
	})
}
