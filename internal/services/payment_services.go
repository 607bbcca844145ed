package services

import (
	"context"
	"fmt"

	"GameMarketAPI/external/midtrans"
	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"
	"GameMarketAPI/internal/repository"

	"github.com/google/uuid"
	mt "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// PaymentService is checkout glue over the order lifecycle: it creates a
// midtrans snap transaction for an unpaid order and completes the order
// when the gateway notifies settlement. Completion goes through the same
// terminal IsPaid transition BuyItems performs.
type PaymentService struct {
	Orders    repository.OrderStore
	Snap      *snap.Client
	ServerKey string
}

func NewPaymentService(or repository.OrderStore, snapClient *snap.Client, serverKey string) *PaymentService {
	return &PaymentService{Orders: or, Snap: snapClient, ServerKey: serverKey}
}

// CreateSnapPayment returns a redirect URL for paying the order.
func (s *PaymentService) CreateSnapPayment(ctx context.Context, userID uuid.UUID, orderID int64) (string, error) {
	order, err := s.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order == nil || order.UserID != userID || order.IsPaid {
		return "", apperr.New(apperr.InvalidOperation, "Can not complete this order.")
	}
	if len(order.Items) == 0 {
		return "", apperr.New(apperr.InvalidOperation, "Order is empty.")
	}

	externalRef := fmt.Sprintf("ORDER-%d-%s", order.ID, uuid.NewString())
	req := &snap.Request{
		TransactionDetails: mt.TransactionDetails{
			OrderID:  externalRef,
			GrossAmt: int64(order.TotalAmount()),
		},
	}
	resp, snapErr := s.Snap.CreateTransaction(req)
	if snapErr != nil {
		return "", apperr.Wrap(apperr.Unavailable, "create snap transaction", snapErr)
	}
	return resp.RedirectURL, nil
}

// HandleNotification processes a midtrans webhook payload. Notifications
// for already-paid orders are acknowledged without effect, the gateway
// retries until it gets a success answer.
func (s *PaymentService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	orderRef, ok := payload["order_id"].(string)
	if !ok {
		return apperr.New(apperr.InvalidData, "Missing order reference.")
	}
	var orderID int64
	if _, err := fmt.Sscanf(orderRef, "ORDER-%d-", &orderID); err != nil {
		return apperr.New(apperr.InvalidData, "Invalid order reference.")
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)
	if !midtrans.VerifySignature(orderRef, statusCode, grossAmount, signature, s.ServerKey) {
		return apperr.New(apperr.InvalidData, "Invalid signature.")
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	switch transactionStatus {
	case "settlement":
		return s.completeOrder(ctx, orderID)
	case "capture":
		if fraudStatus == "accept" {
			return s.completeOrder(ctx, orderID)
		}
	}
	// pending, expire, cancel, deny: the order stays Pending and payable
	return nil
}

func (s *PaymentService) completeOrder(ctx context.Context, orderID int64) error {
	return s.Orders.InTx(ctx, func(tx repository.OrderStore) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperr.Newf(apperr.NotFound, "Order with id %d does not exist.", orderID)
		}
		if order.IsPaid {
			return nil
		}
		order.IsPaid = true
		order.Status = model.OrderCompleted
		return tx.SaveOrder(ctx, order)
	})
}
