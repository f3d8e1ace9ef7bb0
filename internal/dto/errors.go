// Package dto 提供数据传输对象定义
package dto

import "net/http"

// BizError 业务错误
type BizError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

// Error 实现 error 接口
func (e *BizError) Error() string {
	return e.Message
}

// 通用错误 (10xxx)
var (
	ErrInvalidParams     = &BizError{10001, "INVALID_PARAMS", http.StatusBadRequest}
	ErrInvalidWalletAddr = &BizError{10002, "INVALID_WALLET_ADDRESS", http.StatusBadRequest}
	ErrUnauthorized      = &BizError{10003, "UNAUTHORIZED", http.StatusUnauthorized}
	ErrForbidden         = &BizError{10004, "FORBIDDEN", http.StatusForbidden}
)

// 社区错误 (11xxx)
var (
	ErrHubNotFound     = &BizError{11001, "HUB_NOT_FOUND", http.StatusNotFound}
	ErrHubInactive     = &BizError{11002, "HUB_INACTIVE", http.StatusNotFound}
	ErrHubExists       = &BizError{11003, "HUB_ALREADY_EXISTS", http.StatusConflict}
	ErrHubMemberExists = &BizError{11004, "ALREADY_HUB_MEMBER", http.StatusBadRequest}
	ErrInvalidRegion   = &BizError{11005, "INVALID_REGION_KIND", http.StatusBadRequest}
)

// 小组与毕业错误 (12xxx)
var (
	ErrGroupNotFound      = &BizError{12001, "GROUP_NOT_FOUND", http.StatusNotFound}
	ErrGroupInactive      = &BizError{12002, "GROUP_INACTIVE", http.StatusBadRequest}
	ErrGroupFull          = &BizError{12003, "GROUP_IS_FULL", http.StatusConflict}
	ErrGroupMemberExists  = &BizError{12004, "ALREADY_GROUP_MEMBER", http.StatusBadRequest}
	ErrCategoryNotFound   = &BizError{12005, "CATEGORY_NOT_FOUND", http.StatusNotFound}
	ErrAlreadyGraduated   = &BizError{12006, "ALREADY_GRADUATED", http.StatusConflict}
	ErrNotOrganizer       = &BizError{12007, "NOT_ORGANIZER", http.StatusForbidden}
	ErrNotEnoughMembers   = &BizError{12008, "NOT_ENOUGH_MEMBERS", http.StatusBadRequest}
	ErrGraduationDisabled = &BizError{12009, "GRADUATION_DISABLED", http.StatusServiceUnavailable}
	ErrMissingPoolID      = &BizError{12010, "MISSING_POOL_ID", http.StatusBadRequest}
)

// 章程错误 (13xxx)
var (
	ErrCharterNotFound  = &BizError{13001, "CHARTER_NOT_FOUND", http.StatusNotFound}
	ErrAcceptanceExists = &BizError{13002, "CHARTER_ALREADY_ACCEPTED", http.StatusConflict}
	ErrVersionConflict  = &BizError{13003, "CHARTER_VERSION_CONFLICT", http.StatusConflict}
)

// 可靠性错误 (14xxx)
var (
	ErrUnknownEvent = &BizError{14001, "UNKNOWN_RELIABILITY_EVENT", http.StatusBadRequest}
)

// 系统错误 (20xxx)
var (
	ErrInternalError      = &BizError{20001, "INTERNAL_ERROR", http.StatusInternalServerError}
	ErrServiceUnavailable = &BizError{20002, "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable}
)

// NewBizError 创建自定义业务错误
func NewBizError(code int, message string, httpStatus int) *BizError {
	return &BizError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// WithMessage 返回带自定义消息的错误副本
func (e *BizError) WithMessage(msg string) *BizError {
	return &BizError{
		Code:       e.Code,
		Message:    msg,
		HTTPStatus: e.HTTPStatus,
	}
}
