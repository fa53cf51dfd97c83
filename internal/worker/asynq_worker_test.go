package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/provider"
	"github.com/kariakoo/marketplace/internal/queue"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupWorkerTest(t *testing.T) *Consumer {
	t.Helper()

	dsn := fmt.Sprintf("file:worker_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}, &models.Delivery{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	return NewConsumer(&provider.Container{
		OrderRepo: repository.NewOrderRepository(db),
		UserRepo:  repository.NewUserRepository(db),
	})
}

func notifyTask(t *testing.T, payload queue.OrderStatusNotifyPayload) *asynq.Task {
	t.Helper()
	task, err := queue.NewOrderStatusNotifyTask(payload)
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestHandleOrderStatusNotifyUnknownOrder(t *testing.T) {
	consumer := setupWorkerTest(t)

	task := notifyTask(t, queue.OrderStatusNotifyPayload{OrderID: 999, Status: constants.OrderStatusPaid})
	if err := consumer.handleOrderStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

func TestHandleOrderStatusNotifyInvalidPayload(t *testing.T) {
	consumer := setupWorkerTest(t)

	task := asynq.NewTask(queue.TaskOrderStatusNotify, []byte("not-json"))
	if err := consumer.handleOrderStatusNotify(context.Background(), task); err == nil {
		t.Fatalf("malformed payload should return error")
	}
}

func TestHandleOrderStatusNotifyDelivers(t *testing.T) {
	consumer := setupWorkerTest(t)

	user := models.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
		ReferralCode: "WORKER0001",
	}
	if err := consumer.UserRepo.Create(&user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := models.Order{
		UserID:  user.ID,
		OrderNo: "KK1234567890",
		Status:  constants.OrderStatusPaid,
	}
	if err := consumer.OrderRepo.Create(&order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task := notifyTask(t, queue.OrderStatusNotifyPayload{OrderID: order.ID, Status: constants.OrderStatusPaid})
	if err := consumer.handleOrderStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
}
