package seed

import (
	"context"
	"time"

	"AiBeiTongServer/internal/converter"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 演示账号统一口令
const demoPassword = "password"

// Run 写入演示数据（账号、帖子、示例职位）。
// 全部 upsert 写入，重复启动不会重复落行。
func Run(ctx context.Context, db *gorm.DB) error {
	users, err := demoUsers()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&users).Error; err != nil {
		return err
	}

	posts := demoPosts()
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&posts).Error; err != nil {
		return err
	}

	jobs := demoJobs()
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&jobs).Error; err != nil {
		return err
	}

	logger.Info(ctx, "演示数据就绪",
		logger.Int("users", len(users)),
		logger.Int("posts", len(posts)),
		logger.Int("jobs", len(jobs)),
	)
	return nil
}

// demoUsers 演示账号。u_1 关闭好友验证，u_2 开启，方便演示两种加好友路径。
func demoUsers() ([]*model.UserInfo, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return []*model.UserInfo{
		{
			Uuid:                "u_1",
			Username:            "admin",
			Password:            string(hash),
			Nickname:            "Lin Htet (林赫)",
			Avatar:              "https://api.dicebear.com/7.x/avataaars/svg?seed=Lin",
			BackgroundImage:     "https://images.unsplash.com/photo-1557683316-973673baf926?auto=format&fit=crop&w=800&q=80",
			Title:               "HR Manager",
			Bio:                 "专注缅甸华人企业招聘5年，有需要找工作的可以私信我。",
			Location:            "仰光 (Yangon)",
			AllowStrangerView10: true,
			RequireFriendVerify: false,
			VisibleToSearch:     true,
		},
		{
			Uuid:                "u_2",
			Username:            "user2",
			Password:            string(hash),
			Nickname:            "Ei Ei Phyo",
			Avatar:              "https://api.dicebear.com/7.x/avataaars/svg?seed=EiEi",
			BackgroundImage:     "https://images.unsplash.com/photo-1620912189865-1e8a33da4c5e?auto=format&fit=crop&w=800&q=80",
			Title:               "中文翻译",
			Bio:                 "正在寻找曼德勒附近的翻译工作。",
			Location:            "曼德勒 (Mandalay)",
			AllowStrangerView10: true,
			RequireFriendVerify: true,
			VisibleToSearch:     true,
		},
	}, nil
}

// demoPosts 首屏帖子，避免新环境动态页空白。
func demoPosts() []*model.Post {
	now := time.Now()
	return []*model.Post{
		{
			Uuid:     "p_1",
			UserUuid: "u_1",
			Content: "【急招】仰光莱达雅工业区鞋厂招聘：\n1. 生产主管 (2名) - 薪资面议\n" +
				"2. 仓库管理员 (3名) - 60万MMK起\n有意者请直接私信或发简历！",
			Category:  "job",
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			Uuid:      "p_2",
			UserUuid:  "u_2",
			Content:   "今天去面试了一家公司，感觉环境不错，希望不仅能赚钱，还能学到东西！大家找工作都要加油哦！💪",
			Image:     "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?auto=format&fit=crop&w=800&q=80",
			Category:  "image",
			CreatedAt: now.Add(-5 * time.Hour),
		},
	}
}

// demoJobs 示例职位，发布人都挂在演示 HR 账号 u_1 下。
func demoJobs() []*model.Job {
	now := time.Now()
	return []*model.Job{
		{
			Uuid:         "job_1",
			UserUuid:     "u_1",
			Title:        "中文翻译 (Chinese Translator)",
			Company:      "Golden Myanmar Garment Co.",
			Location:     "仰光 (Yangon) - Hlaing Tharyar",
			Salary:       "80万 - 120万 MMK",
			Description:  "负责工厂内部中缅文翻译，协助管理层与当地员工沟通。需要中文流利，有工厂经验者优先。",
			Requirements: mustJSON("中文听说读写流利", "缅甸语母语", "有工厂翻译经验优先", "能接受加班"),
			Tags:         mustJSON("翻译", "工厂", "包吃住"),
			ContactEmail: "hr@goldenmyanmar.com",
			CreatedAt:    now.Add(-24 * time.Hour),
		},
		{
			Uuid:         "job_2",
			UserUuid:     "u_1",
			Title:        "销售经理 (Sales Manager)",
			Company:      "Oppo Mobile Myanmar",
			Location:     "曼德勒 (Mandalay)",
			Salary:       "150万 - 300万 MMK",
			Description:  "负责曼德勒地区的手机销售渠道拓展，管理销售团队。",
			Requirements: mustJSON("3年以上销售经验", "有团队管理经验", "熟悉手机市场", "会中文优先"),
			Tags:         mustJSON("销售", "管理", "高提成"),
			ContactEmail: "sales@oppo.mm",
			CreatedAt:    now.Add(-48 * time.Hour),
		},
		{
			Uuid:         "job_3",
			UserUuid:     "u_1",
			Title:        "会计助理 (Accounting Assistant)",
			Company:      "Yangon Logistics Ltd",
			Location:     "仰光 (Yangon) - Downtown",
			Salary:       "50万 - 80万 MMK",
			Description:  "协助处理日常财务报表，税务申报，以及办公室行政事务。",
			Requirements: mustJSON("LCCI Level 2/3", "熟练使用Excel", "细心负责"),
			Tags:         mustJSON("财务", "行政", "办公室"),
			ContactEmail: "finance@ylogistics.com",
			CreatedAt:    now.Add(-5 * 24 * time.Hour),
		},
	}
}

func mustJSON(items ...string) datatypes.JSON {
	return datatypes.JSON(converter.StringsToJSON(items))
}
