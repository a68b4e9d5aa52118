package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"AiBeiTongServer/config"
	"AiBeiTongServer/internal/handler"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/internal/mq"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/internal/router"
	"AiBeiTongServer/internal/seed"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/async"
	"AiBeiTongServer/pkg/gemini"
	"AiBeiTongServer/pkg/jwtauth"
	"AiBeiTongServer/pkg/kafka"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/mailer"
	"AiBeiTongServer/pkg/minio"
	"AiBeiTongServer/pkg/mysql"
	pkgredis "AiBeiTongServer/pkg/redis"
	"AiBeiTongServer/pkg/util"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. 初始化日志
	logCfg := config.DefaultLoggerConfig()
	zl, err := logger.Build(logCfg)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	logger.ReplaceGlobal(zl)
	defer zl.Sync()

	// 2. 初始化小组件
	util.InitSnowflake(1) // 雪花算法
	jwtauth.Init(config.DefaultJWTConfig())

	asyncCfg := config.DefaultAsyncConfig()
	if err := async.Init(asyncCfg); err != nil {
		log.Fatalf("初始化协程池失败: %v", err)
	}
	defer async.Release()

	// 3. 初始化MySQL
	dbCfg := config.DefaultMySQLConfig()
	db, err := mysql.Build(dbCfg)
	if err != nil {
		log.Fatalf("初始化MySQL失败: %v", err)
	}
	mysql.ReplaceGlobal(db)

	if err := db.AutoMigrate(
		&model.UserInfo{},
		&model.UserRelation{},
		&model.FriendRequest{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.FavoriteItem{},
		&model.PinnedChat{},
		&model.Message{},
		&model.Job{},
		&model.JobApplication{},
	); err != nil {
		log.Fatalf("建表失败: %v", err)
	}

	serverCfg := config.DefaultServerConfig()
	if serverCfg.SeedDemo {
		if err := seed.Run(ctx, db); err != nil {
			logger.Warn(ctx, "写入演示数据失败", logger.ErrorField("error", err))
		}
	}

	// 4. 初始化Redis。
	// 仓储层的缓存读写不做 nil 防护，Redis 连不上直接拒绝启动
	redisCfg := config.DefaultRedisConfig()
	// 调整 Redis 读写超时时间为 50ms（快速失败）
	redisCfg.ReadTimeout = 50 * time.Millisecond
	redisCfg.WriteTimeout = 50 * time.Millisecond

	redisClient, err := pkgredis.Build(redisCfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}
	pkgredis.ReplaceGlobal(redisClient)
	logger.Info(ctx, "Redis 初始化成功",
		logger.String("addr", redisCfg.Addr),
	)

	// 5. 初始化 Kafka
	kafkaCfg := config.DefaultKafkaConfig()

	kafkaProducer := kafka.NewProducer(kafkaCfg.Brokers, kafkaCfg.RedisRetryTopic)
	mq.SetGlobalProducer(kafkaProducer)
	logger.Info(ctx, "Kafka Producer 初始化成功",
		logger.String("brokers", kafkaCfg.Brokers[0]),
		logger.String("topic", kafkaCfg.RedisRetryTopic),
	)

	redisConsumer := mq.NewRedisRetryConsumer(
		kafkaCfg.Brokers,
		kafkaCfg.RedisRetryTopic,
		kafkaCfg.ConsumerConfig.GroupID,
		redisClient,
		kafkaProducer,
		logger.L(),
	)

	go func() {
		logger.Info(ctx, "Redis 重试消费者启动中",
			logger.String("topic", kafkaCfg.RedisRetryTopic),
			logger.String("group_id", kafkaCfg.ConsumerConfig.GroupID),
		)
		redisConsumer.Start(ctx)
	}()

	defer func() {
		if err := kafkaProducer.Close(); err != nil {
			logger.Error(ctx, "关闭 Kafka Producer 失败", logger.ErrorField("error", err))
		}
		if err := redisConsumer.Close(); err != nil {
			logger.Error(ctx, "关闭 Redis 重试消费者失败", logger.ErrorField("error", err))
		}
	}()

	// 6. 初始化对象存储
	storage, err := minio.New(ctx, config.DefaultMinIOConfig())
	if err != nil {
		// 对象存储不可用只影响头像上传，不阻塞启动
		logger.Warn(ctx, "MinIO 初始化失败，头像上传不可用", logger.ErrorField("error", err))
		storage = nil
	}

	// 7. 初始化邮件
	mailCfg := config.DefaultMailConfig()
	var mail mailer.Mailer = mailer.Noop{}
	if mailCfg.Enabled() {
		mail = mailer.New(mailCfg)
		logger.Info(ctx, "SMTP 邮件通知已启用", logger.String("host", mailCfg.Host))
	}

	// 8. 初始化 Gemini 文本生成
	generator, err := gemini.New(ctx, config.DefaultGeminiConfig())
	if err != nil {
		if errors.Is(err, gemini.ErrDisabled) {
			logger.Warn(ctx, "未配置 Gemini API Key，AI 功能走兜底文案")
		} else {
			logger.Warn(ctx, "Gemini 初始化失败，AI 功能走兜底文案", logger.ErrorField("error", err))
		}
		generator = nil
	}

	// 9. 组装依赖 - Repository 层
	authRepo := repository.NewAuthRepository(db, redisClient)
	userRepo := repository.NewUserRepository(db, redisClient)
	relationRepo := repository.NewRelationRepository(db, redisClient)
	requestRepo := repository.NewFriendRequestRepository(db)
	postRepo := repository.NewPostRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// 10. 组装依赖 - Service 层
	authService := service.NewAuthService(authRepo, relationRepo)
	userService := service.NewUserService(userRepo, authRepo, relationRepo, storage)
	friendService := service.NewFriendService(userRepo, relationRepo, requestRepo)
	contentService := service.NewContentService(postRepo, userRepo, relationRepo)
	interactionService := service.NewInteractionService(interactionRepo, userRepo, postRepo, jobRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, relationRepo, interactionRepo)
	jobService := service.NewJobService(jobRepo, userRepo, mail)
	aiService := service.NewAIService(generator)

	// 11. 组装依赖 - Handler 层
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Friend:      handler.NewFriendHandler(friendService),
		Content:     handler.NewContentHandler(contentService),
		Interaction: handler.NewInteractionHandler(interactionService),
		Message:     handler.NewMessageHandler(messageService),
		Job:         handler.NewJobHandler(jobService),
		AI:          handler.NewAIHandler(aiService),
	}

	// 12. 启动 HTTP Server
	limiter := middleware.NewRateLimiter(serverCfg.RateLimitPerSec, serverCfg.RateLimitBurst)
	limiter.SetRedisClient(redisClient)

	engine := router.InitRouter(handlers, redisClient, limiter)

	srv := &http.Server{
		Addr:         serverCfg.Addr,
		Handler:      engine,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
	}

	go func() {
		logger.Info(ctx, "HTTP 服务启动成功", logger.String("address", serverCfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动HTTP服务失败: %v", err)
		}
	}()

	// 13. 等待退出信号，优雅关闭
	<-ctx.Done()
	logger.Info(context.Background(), "收到退出信号，开始优雅关闭")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "HTTP 服务关闭异常", logger.ErrorField("error", err))
	}
	logger.Info(context.Background(), "服务已退出")
}
