package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleDemoUser  Role = "DEMO_USER"
	RoleDemoAdmin Role = "DEMO_ADMIN"
)

func AdminRoles() []string { return []string{string(RoleAdmin), string(RoleDemoAdmin)} }
func DemoRoles() []string  { return []string{string(RoleDemoUser), string(RoleDemoAdmin)} }

type Base struct {
	ID        uuid.UUID `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type User struct {
	Base
	Name         string     `gorm:"size:120;not null" json:"name"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:USER" json:"role"`
	OTPHash      string     `gorm:"size:64" json:"-"`
	OTPExpiry    *time.Time `json:"-"`
}

type RefreshToken struct {
	Base
	UserID    uuid.UUID `gorm:"index;not null" json:"userId"`
	TokenHash string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	JTI       string    `gorm:"size:64;uniqueIndex;not null" json:"jti"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
}

type Product struct {
	Base
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Category    string          `gorm:"size:100;index;not null" json:"category"`
	Images      StringList      `json:"images"`
	ModelURL    *string         `json:"modelUrl,omitempty"`
	Reviews     []Review        `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

type CartItem struct {
	Base
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"userId"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
}

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether a customer may still cancel.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}

type Order struct {
	Base
	UserID          uuid.UUID       `gorm:"index;not null" json:"userId"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentIntentID string          `gorm:"size:128;uniqueIndex;not null" json:"paymentIntentId"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	AddressID       *uuid.UUID      `json:"addressId,omitempty"`
	ShipName        string          `json:"shipName"`
	ShipStreet      string          `json:"shipStreet"`
	ShipCity        string          `json:"shipCity"`
	ShipState       string          `json:"shipState"`
	ShipZip         string          `json:"shipZip"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type OrderItem struct {
	Base
	OrderID   uuid.UUID       `gorm:"index;not null" json:"orderId"`
	ProductID uuid.UUID       `gorm:"index;not null" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unitPrice"`
	Order     *Order          `json:"order,omitempty"`
	Product   *Product        `json:"product,omitempty"`
}

type Address struct {
	Base
	UserID uuid.UUID `gorm:"index;not null" json:"userId"`
	Name   string    `gorm:"size:120;not null" json:"name"`
	Street string    `gorm:"size:255;not null" json:"street"`
	City   string    `gorm:"size:120;not null" json:"city"`
	State  string    `gorm:"size:120;not null" json:"state"`
	Zip    string    `gorm:"size:20;not null" json:"zip"`
}

type Review struct {
	Base
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_review_user_product;not null" json:"productId"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_review_user_product;not null" json:"userId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	User      *User     `json:"user,omitempty"`
}

func All() []any {
	return []any{
		&User{}, &RefreshToken{}, &Product{}, &CartItem{},
		&Order{}, &OrderItem{}, &Address{}, &Review{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
