package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrBlogNotFound      = errors.New("博客不存在")
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrCommentNotOwned   = errors.New("只能操作自己的评论")
	ErrActionDuplicate   = errors.New("重复操作")
	ErrNotifyUnavailable = errors.New("通知服务不可用")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrBlogNotFound:      NotFound,
	ErrCommentNotFound:   NotFound,
	ErrCommentNotOwned:   Forbidden,
	ErrActionDuplicate:   BadRequest,
	ErrNotifyUnavailable: InternalServerError,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}
