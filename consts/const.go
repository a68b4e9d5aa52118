package consts

// 通用错误码
const (
	CodeSuccess = 0 // 成功
)

// 客户端错误 (1xxxx)
const (
	CodeParamError       = 10001 // 参数验证失败
	CodeBodyError        = 10002 // 请求体格式错误
	CodeResourceNotFound = 10003 // 资源不存在
	CodeMethodNotAllowed = 10004 // 请求方法不允许
	CodeTooManyRequests  = 10005 // 请求过于频繁
	CodeBodyTooLarge     = 10006 // 请求体过大
)

// 认证错误 (2xxxx)
const (
	CodeUnauthorized   = 20001 // 未认证
	CodeInvalidToken   = 20002 // Token 无效
	CodeTokenExpired   = 20003 // Token 已过期
	CodePermissionDeny = 20004 // 权限不足
)

// 用户模块错误 (11xxx)
const (
	CodeUserNotFound        = 11001 // 用户不存在
	CodeUserAlreadyExist    = 11002 // 账号已被注册
	CodePasswordError       = 11003 // 账号或密码错误
	CodeUserDisabled        = 11004 // 用户已被禁用
	CodeUsernameRateLimited = 11005 // 账号修改过于频繁
	CodeUploadTypeError     = 11006 // 文件类型不支持
	CodeUploadTooLarge      = 11007 // 文件过大
)

// 好友模块错误 (12xxx)
const (
	CodeAlreadyFriend       = 12001 // 已经是好友
	CodeFriendRequestSent   = 12002 // 好友申请已发送
	CodeFriendRequestAbsent = 12003 // 好友申请不存在
	CodeNotFriend           = 12004 // 不存在该好友关系
	CodeAlreadyBlocked      = 12005 // 已在黑名单中
	CodeCannotAddSelf       = 12006 // 不能添加自己为好友
)

// 消息模块错误 (13xxx)
const (
	CodeMessageNotFound     = 13001 // 消息不存在
	CodeMessageSendFail     = 13002 // 消息发送失败
	CodeRecallWindowExpired = 13003 // 超过可撤回时间
	CodeMessageNotOwned     = 13004 // 只能操作自己发送的消息
)

// 帖子模块错误 (15xxx)
const (
	CodePostNotFound     = 15001 // 帖子不存在
	CodePostContentEmpty = 15002 // 内容不能为空
	CodePostNotOwned     = 15003 // 无权删除
	CodeCommentNotFound  = 15004 // 评论不存在
	CodeCommentNotOwned  = 15005 // 无法删除评论
)

// 职位模块错误 (16xxx)
const (
	CodeJobNotFound     = 16001 // 职位不存在
	CodeJobApplyRepeat  = 16002 // 已投递过该职位
	CodeJobContentEmpty = 16003 // 职位信息不完整
)

// 服务端错误 (3xxxx)
const (
	CodeInternalError      = 30001 // 服务器内部错误
	CodeServiceUnavailable = 30002 // 服务暂不可用
	CodeTimeoutError       = 30003 // 请求超时
)

// 错误消息映射
var CodeMessage = map[int32]string{
	CodeSuccess: "success",

	// 客户端错误
	CodeParamError:       "参数验证失败",
	CodeBodyError:        "请求体格式错误",
	CodeResourceNotFound: "资源不存在",
	CodeMethodNotAllowed: "请求方法不允许",
	CodeTooManyRequests:  "请求过于频繁",
	CodeBodyTooLarge:     "请求体过大",

	// 认证错误
	CodeUnauthorized:   "未认证",
	CodeInvalidToken:   "Token 无效",
	CodeTokenExpired:   "Token 已过期",
	CodePermissionDeny: "权限不足",

	// 用户模块
	CodeUserNotFound:        "用户不存在",
	CodeUserAlreadyExist:    "账号已被注册",
	CodePasswordError:       "账号或密码错误",
	CodeUserDisabled:        "用户已被禁用",
	CodeUsernameRateLimited: "账号修改过于频繁",
	CodeUploadTypeError:     "文件类型不支持",
	CodeUploadTooLarge:      "文件过大",

	// 好友模块
	CodeAlreadyFriend:       "已经是好友了",
	CodeFriendRequestSent:   "已发送申请，请等待通过",
	CodeFriendRequestAbsent: "申请不存在",
	CodeNotFriend:           "不存在该好友关系",
	CodeAlreadyBlocked:      "已在黑名单中",
	CodeCannotAddSelf:       "不能添加自己为好友",

	// 消息模块
	CodeMessageNotFound:     "消息不存在",
	CodeMessageSendFail:     "消息发送失败",
	CodeRecallWindowExpired: "发送超过2分钟的消息不可撤回",
	CodeMessageNotOwned:     "只能操作自己发送的消息",

	// 帖子模块
	CodePostNotFound:     "帖子不存在",
	CodePostContentEmpty: "内容不能为空",
	CodePostNotOwned:     "无权删除",
	CodeCommentNotFound:  "评论不存在",
	CodeCommentNotOwned:  "无法删除评论",

	// 职位模块
	CodeJobNotFound:     "职位不存在",
	CodeJobApplyRepeat:  "已投递过该职位",
	CodeJobContentEmpty: "职位信息不完整",

	// 服务端错误
	CodeInternalError:      "服务器内部错误",
	CodeServiceUnavailable: "服务暂不可用",
	CodeTimeoutError:       "请求超时",
}

// GetMessage 根据错误码获取错误消息
func GetMessage(code int32) string {
	if msg, ok := CodeMessage[code]; ok {
		return msg
	}
	return "未知错误"
}

// IsNonServerError 判断是否为业务错误（非 3xxxx 服务端错误）。
// 业务错误直接透传给客户端，不记录 Error 日志。
func IsNonServerError(code int32) bool {
	return code > 0 && code < 30000
}
