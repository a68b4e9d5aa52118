package converter

import (
	"encoding/json"

	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/model"
)

// ==================== Model -> DTO 转换 ====================

// UserToView 用户模型转视图。
// isSelf 为 true 时带上隐私设置与联系人列表。
func UserToView(user *model.UserInfo, isSelf bool, contacts []string) *dto.UserView {
	if user == nil {
		return nil
	}
	view := &dto.UserView{
		UUID:            user.Uuid,
		Username:        user.Username,
		Nickname:        user.Nickname,
		Avatar:          user.Avatar,
		BackgroundImage: user.BackgroundImage,
		Title:           user.Title,
		Bio:             user.Bio,
		Location:        user.Location,
		Phone:           user.Phone,
	}
	if isSelf {
		view.Privacy = &dto.PrivacyView{
			AllowStrangerView10: user.AllowStrangerView10,
			RequireFriendVerify: user.RequireFriendVerify,
			VisibleToSearch:     user.VisibleToSearch,
		}
		if contacts == nil {
			contacts = []string{}
		}
		view.Contacts = contacts
	}
	return view
}

// UserToBrief 简要视图（嵌入帖子/申请等，不带隐私）
func UserToBrief(user *model.UserInfo) *dto.UserView {
	return UserToView(user, false, nil)
}

// PostToView 帖子模型转视图
func PostToView(post *model.Post, author *model.UserInfo, liked bool) *dto.PostView {
	if post == nil {
		return nil
	}
	return &dto.PostView{
		UUID:         post.Uuid,
		Author:       UserToBrief(author),
		Content:      post.Content,
		Image:        post.Image,
		Category:     post.Category,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		Liked:        liked,
		CreatedAt:    post.CreatedAt.UnixMilli(),
	}
}

// CommentToView 评论模型转视图
func CommentToView(comment *model.Comment, author *model.UserInfo) *dto.CommentView {
	if comment == nil {
		return nil
	}
	return &dto.CommentView{
		UUID:        comment.Uuid,
		Author:      UserToBrief(author),
		Content:     comment.Content,
		ReplyToUUID: comment.ReplyToUuid,
		ReplyToName: comment.ReplyToName,
		CreatedAt:   comment.CreatedAt.UnixMilli(),
	}
}

// MessageToView 消息模型转视图
func MessageToView(msg *model.Message) *dto.MessageView {
	if msg == nil {
		return nil
	}
	msgType := "text"
	if msg.Type == model.MessageTypeRecalled {
		msgType = "recalled"
	}
	return &dto.MessageView{
		UUID:      msg.Uuid,
		FromUUID:  msg.FromUuid,
		ToUUID:    msg.ToUuid,
		Content:   msg.Content,
		Type:      msgType,
		CreatedAt: msg.CreatedAt.UnixMilli(),
	}
}

// FriendRequestToView 好友申请模型转视图
func FriendRequestToView(req *model.FriendRequest, from *model.UserInfo) *dto.FriendRequestView {
	if req == nil {
		return nil
	}
	status := "pending"
	switch req.Status {
	case model.RequestStatusAccepted:
		status = "accepted"
	case model.RequestStatusRejected:
		status = "rejected"
	}
	return &dto.FriendRequestView{
		UUID:      req.Uuid,
		From:      UserToBrief(from),
		Message:   req.Message,
		Status:    status,
		CreatedAt: req.CreatedAt.UnixMilli(),
	}
}

// FavoriteToView 收藏模型转视图
func FavoriteToView(item *model.FavoriteItem) *dto.FavoriteView {
	if item == nil {
		return nil
	}
	return &dto.FavoriteView{
		ItemUUID:  item.ItemUuid,
		ItemType:  item.ItemType,
		CreatedAt: item.CreatedAt.UnixMilli(),
	}
}

// JobToView 职位模型转视图
func JobToView(job *model.Job, publisher *model.UserInfo) *dto.JobView {
	if job == nil {
		return nil
	}
	return &dto.JobView{
		UUID:         job.Uuid,
		Publisher:    UserToBrief(publisher),
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Salary:       job.Salary,
		Description:  job.Description,
		Requirements: jsonToStrings([]byte(job.Requirements)),
		Tags:         jsonToStrings([]byte(job.Tags)),
		ContactEmail: job.ContactEmail,
		CreatedAt:    job.CreatedAt.UnixMilli(),
	}
}

// StringsToJSON 字符串列表转 JSON 列（入库用）
func StringsToJSON(items []string) []byte {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return []byte("[]")
	}
	return data
}

func jsonToStrings(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	return items
}
