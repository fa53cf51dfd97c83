package public

import (
	"errors"

	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrSKUNotFound, code: response.CodeNotFound, msg: "sku not found"},
	{target: service.ErrSKUUnavailable, code: response.CodeBadRequest, msg: "sku not available"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, msg: "cart not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartNotFound, code: response.CodeNotFound, msg: "cart not found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrSKUUnavailable, code: response.CodeBadRequest, msg: "sku not available"},
	{target: service.ErrDiscountCodeInvalid, code: response.CodeBadRequest, msg: "invalid or expired discount code"},
	{target: service.ErrDiscountCodeMinOrder, code: response.CodeBadRequest, msg: "order total too low for discount code"},
	{target: service.ErrLoyaltyMinRedemption, code: response.CodeBadRequest, msg: "minimum 1000 points per redemption"},
	{target: service.ErrLoyaltyInsufficientPoints, code: response.CodeBadRequest, msg: "insufficient loyalty points"},
	{target: service.ErrLoyaltyCartTooLow, code: response.CodeBadRequest, msg: "cart total too low for redemption"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "user not found"},
}

var orderActionErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderAccessDenied, code: response.CodeForbidden, msg: "order access denied"},
	{target: service.ErrInvalidTransition, code: response.CodeBadRequest, msg: "order status transition not allowed"},
	{target: service.ErrPaymentRefRequired, code: response.CodeBadRequest, msg: "payment reference required"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart operation failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
}

func respondOrderActionError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderActionErrorRules, response.CodeInternal, "order operation failed")
}
