package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/pkg/util"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type UserResponse struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type CreateProductRequest struct {
	Title       string           `json:"title" validate:"notblank,max=200"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Stock       *int             `json:"stock" validate:"required,min=0"`
	Category    string           `json:"category" validate:"notblank,max=100"`
	Images      []string         `json:"images" validate:"omitempty,dive,url"`
	ModelURL    *string          `json:"modelUrl" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Title       *string          `json:"title" validate:"omitempty,notblank,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
	Category    *string          `json:"category" validate:"omitempty,notblank,max=100"`
	Images      *[]string        `json:"images"`
	ModelURL    *string          `json:"modelUrl"`
}

type UpdateStockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewReviewResponse(r models.Review) ReviewResponse {
	name := "Deleted User"
	if r.User != nil {
		name = r.User.Name
	}
	return ReviewResponse{ID: r.ID, UserID: r.UserID, UserName: name, Rating: r.Rating, Content: r.Content, CreatedAt: r.CreatedAt}
}

type ProductResponse struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock"`
	Category    string           `json:"category"`
	Images      []string         `json:"images"`
	ModelURL    *string          `json:"modelUrl,omitempty"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"reviewCount"`
	Reviews     []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// NewProductResponse includes review bodies only when withReviews is set;
// the average rating is always computed from whatever was loaded.
func NewProductResponse(p *models.Product, withReviews bool) ProductResponse {
	out := ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Images:      []string(p.Images),
		ModelURL:    p.ModelURL,
		ReviewCount: len(p.Reviews),
		CreatedAt:   p.CreatedAt,
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
		if withReviews {
			out.Reviews = append(out.Reviews, NewReviewResponse(r))
		}
	}
	if len(p.Reviews) > 0 {
		out.Rating = float64(sum) / float64(len(p.Reviews))
	}
	return out
}

type ProductPage struct {
	Data []ProductResponse `json:"data"`
	Meta util.Meta         `json:"meta"`
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1,max=100"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=100"`
}

type CartItemResponse struct {
	ID        uuid.UUID        `json:"id"`
	ProductID uuid.UUID        `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type OrderItemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=100"`
}

type CreateOrderRequest struct {
	PaymentIntentID string           `json:"paymentIntentId" validate:"notblank,max=128"`
	AddressID       uuid.UUID        `json:"addressId" validate:"required"`
	Items           []OrderItemInput `json:"items" validate:"omitempty,dive"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

type AdminOrderItem struct {
	ID           uuid.UUID          `json:"id"`
	OrderID      uuid.UUID          `json:"orderId"`
	Status       models.OrderStatus `json:"status"`
	CustomerID   uuid.UUID          `json:"customerId"`
	CustomerName string             `json:"customerName"`
	ProductID    uuid.UUID          `json:"productId"`
	ProductTitle string             `json:"productTitle"`
	Quantity     int                `json:"quantity"`
	UnitPrice    decimal.Decimal    `json:"unitPrice"`
	OrderTotal   decimal.Decimal    `json:"orderTotal"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type AddressRequest struct {
	Name   string `json:"name" validate:"notblank,max=120"`
	Street string `json:"street" validate:"notblank,max=255"`
	City   string `json:"city" validate:"notblank,max=120"`
	State  string `json:"state" validate:"notblank,max=120"`
	Zip    string `json:"zip" validate:"notblank,max=20"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"notblank,max=2000"`
}

type CreatePaymentOrderRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type PaymentOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	KeyID    string `json:"keyId"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required,hexadecimal"`
}

type UploadFile struct {
	Filename    string `json:"filename" validate:"notblank,max=200"`
	ContentType string `json:"contentType" validate:"required"`
	Size        int64  `json:"size" validate:"required,min=1"`
}

type UploadRequest struct {
	Files []UploadFile `json:"files" validate:"required,min=1,dive"`
}
