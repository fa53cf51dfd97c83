package service

import (
	"strings"
	"time"

	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/logger"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/queue"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// allowedTransitions 订单状态机流转表，表外的流转一律拒绝。
// completed / cancelled / refunded 是终态。
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusPaid:      true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPaid: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
		constants.OrderStatusDisputed:  true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
		constants.OrderStatusDisputed:  true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusDisputed:  true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusCompleted: true,
		constants.OrderStatusDisputed:  true,
	},
	constants.OrderStatusDisputed: {
		constants.OrderStatusRefunded:  true,
		constants.OrderStatusCompleted: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	nexts, ok := allowedTransitions[strings.ToLower(strings.TrimSpace(current))]
	if !ok {
		return false
	}
	return nexts[strings.ToLower(strings.TrimSpace(target))]
}

// OrderStatusService 订单状态机服务
type OrderStatusService struct {
	orderRepo      repository.OrderRepository
	deliveryRepo   repository.DeliveryRepository
	userRepo       repository.UserRepository
	referralRepo   repository.ReferralRewardRepository
	loyaltyService *LoyaltyService
	queueClient    *queue.Client
}

// NewOrderStatusService 创建订单状态机服务
func NewOrderStatusService(orderRepo repository.OrderRepository, deliveryRepo repository.DeliveryRepository, userRepo repository.UserRepository, referralRepo repository.ReferralRewardRepository, loyaltyService *LoyaltyService, queueClient *queue.Client) *OrderStatusService {
	return &OrderStatusService{
		orderRepo:      orderRepo,
		deliveryRepo:   deliveryRepo,
		userRepo:       userRepo,
		referralRepo:   referralRepo,
		loyaltyService: loyaltyService,
		queueClient:    queueClient,
	}
}

// transition 在持锁事务内执行一次状态流转。
// sideEffects 在状态写入前的同一事务内执行，失败整体回滚。
func (s *OrderStatusService) transition(orderID uint, target string, sideEffects func(tx *gorm.DB, order *models.Order, now time.Time) error) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	now := time.Now()
	var order *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		var err error
		order, err = orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !isTransitionAllowed(order.Status, target) {
			return ErrInvalidTransition
		}
		previous := order.Status
		order.Status = target
		switch target {
		case constants.OrderStatusPaid:
			order.PaidAt = &now
		case constants.OrderStatusShipped:
			order.ShippedAt = &now
		case constants.OrderStatusDelivered:
			order.DeliveredAt = &now
		case constants.OrderStatusCompleted:
			order.CompletedAt = &now
		case constants.OrderStatusCancelled:
			order.CancelledAt = &now
		}
		if sideEffects != nil {
			if err := sideEffects(tx, order, now); err != nil {
				return err
			}
		}
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		logger.Infow("order_status_changed",
			"order_no", order.OrderNo,
			"from", previous,
			"to", target,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: order.ID,
		Status:  order.Status,
	}); err != nil {
		logger.Warnw("order_status_notify_enqueue_failed", "order_id", order.ID, "error", err)
	}
	return order, nil
}

// ConfirmPayment 支付确认，pending → paid（支付网关回调入口）
func (s *OrderStatusService) ConfirmPayment(orderID, userID uint, reference string) (*models.Order, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrPaymentRefRequired
	}
	return s.transition(orderID, constants.OrderStatusPaid, func(tx *gorm.DB, order *models.Order, now time.Time) error {
		if userID > 0 && order.UserID != userID {
			return ErrOrderAccessDenied
		}
		order.PaymentReference = reference
		return nil
	})
}

// ConfirmOrder 卖家接单，paid → confirmed
func (s *OrderStatusService) ConfirmOrder(orderID uint) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusConfirmed, nil)
}

// MarkShipped 发货，confirmed → shipped
func (s *OrderStatusService) MarkShipped(orderID uint, carrier, trackingNo string) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusShipped, func(tx *gorm.DB, order *models.Order, now time.Time) error {
		deliveryRepo := s.deliveryRepo.WithTx(tx)
		delivery, err := deliveryRepo.GetByOrderID(order.ID)
		if err != nil {
			return err
		}
		if delivery == nil {
			return nil
		}
		delivery.Carrier = strings.TrimSpace(carrier)
		delivery.TrackingNo = strings.TrimSpace(trackingNo)
		return deliveryRepo.Update(delivery)
	})
}

// RecordDeliveryProof 上传送达凭证并流转 shipped → delivered
func (s *OrderStatusService) RecordDeliveryProof(orderID uint, proof string) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusDelivered, func(tx *gorm.DB, order *models.Order, now time.Time) error {
		deliveryRepo := s.deliveryRepo.WithTx(tx)
		delivery, err := deliveryRepo.GetByOrderID(order.ID)
		if err != nil {
			return err
		}
		if delivery == nil {
			return nil
		}
		delivery.ActualDelivery = &now
		delivery.DeliveryProof = strings.TrimSpace(proof)
		return deliveryRepo.Update(delivery)
	})
}

// CompleteOrder 买家确认收货，delivered → completed。
// 放款与推荐奖励各自幂等，重复流转会被状态机拒绝。
func (s *OrderStatusService) CompleteOrder(orderID, userID uint) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusCompleted, func(tx *gorm.DB, order *models.Order, now time.Time) error {
		if userID > 0 && order.UserID != userID {
			return ErrOrderAccessDenied
		}
		if err := s.releaseEscrow(order); err != nil {
			return err
		}
		return s.grantReferralReward(tx, order)
	})
}

// ResolveDispute 争议裁决完成，disputed → completed
func (s *OrderStatusService) ResolveDispute(orderID uint) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusCompleted, func(tx *gorm.DB, order *models.Order, now time.Time) error {
		if err := s.releaseEscrow(order); err != nil {
			return err
		}
		return s.grantReferralReward(tx, order)
	})
}

// CancelOrder 取消订单
func (s *OrderStatusService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusCancelled, func(tx *gorm.DB, order *models.Order, now time.Time) error {
		if userID > 0 && order.UserID != userID {
			return ErrOrderAccessDenied
		}
		return nil
	})
}

// OpenDispute 发起争议
func (s *OrderStatusService) OpenDispute(orderID, userID uint) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusDisputed, func(tx *gorm.DB, order *models.Order, now time.Time) error {
		if userID > 0 && order.UserID != userID {
			return ErrOrderAccessDenied
		}
		return nil
	})
}

// RefundOrder 争议退款，disputed → refunded
func (s *OrderStatusService) RefundOrder(orderID uint) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusRefunded, func(tx *gorm.DB, order *models.Order, now time.Time) error {
		return nil
	})
}

// releaseEscrow 放款给卖家，幂等：已放款直接返回
func (s *OrderStatusService) releaseEscrow(order *models.Order) error {
	if order.EscrowReleased {
		return nil
	}
	order.EscrowReleased = true
	logger.Infow("escrow_released",
		"order_no", order.OrderNo,
		"amount", order.TotalAmount.String(),
	)
	return nil
}

// grantReferralReward 被推荐人首单完成时双方各得奖励积分。
// ReferralReward 按被推荐人唯一，天然只发一次。
func (s *OrderStatusService) grantReferralReward(tx *gorm.DB, order *models.Order) error {
	userRepo := s.userRepo.WithTx(tx)
	referralRepo := s.referralRepo.WithTx(tx)

	buyer, err := userRepo.GetByID(order.UserID)
	if err != nil {
		return err
	}
	if buyer == nil || buyer.ReferredByID == nil {
		return nil
	}
	existing, err := referralRepo.GetByReferee(buyer.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	points := decimal.NewFromInt(constants.ReferralRewardPoints)
	orderID := order.ID
	if err := referralRepo.Create(&models.ReferralReward{
		ReferrerID: *buyer.ReferredByID,
		RefereeID:  buyer.ID,
		OrderID:    orderID,
		Points:     models.NewMoneyFromDecimal(points),
	}); err != nil {
		return err
	}
	if err := s.loyaltyService.GrantPoints(tx, *buyer.ReferredByID, points, constants.LoyaltyTxnReferralReward, &orderID, "referral reward"); err != nil {
		return err
	}
	if err := s.loyaltyService.GrantPoints(tx, buyer.ID, points, constants.LoyaltyTxnReferralReward, &orderID, "referral reward"); err != nil {
		return err
	}
	logger.Infow("referral_reward_granted",
		"referrer_id", *buyer.ReferredByID,
		"referee_id", buyer.ID,
		"order_no", order.OrderNo,
	)
	return nil
}
