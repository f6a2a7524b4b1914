package wire

import (
	"BlogPress/internal/api"
	"BlogPress/internal/api/config"
	"BlogPress/internal/api/handler"
	"BlogPress/internal/job"
	"BlogPress/internal/pkg/client"
	"BlogPress/internal/pkg/cron"
	"BlogPress/internal/pkg/idempotency"
	"BlogPress/internal/pkg/kafka"
	"BlogPress/internal/pkg/mail"
	mongodb "BlogPress/internal/pkg/mongo"
	"BlogPress/internal/pkg/notify"
	redisPkg "BlogPress/internal/pkg/redis"
	"BlogPress/internal/repository"
	"BlogPress/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// EngagementContainer 互动服务的顶级组件
type EngagementContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	Publisher    notify.Publisher
}

func BuildEngagementApp(db *gorm.DB, cfg *config.Config) (*EngagementContainer, error) {
	engagementRepo := repository.NewEngagementRepo(db)
	counterCache := redisPkg.NewCounterCache()
	blogClient := client.NewBlogClient(cfg.Services.BlogBaseURL)

	threshold := cfg.Notify.BreakerThreshold
	if threshold <= 0 {
		threshold = 5
	}
	cooldown := time.Duration(cfg.Notify.BreakerCooldown) * time.Second
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	breaker := notify.NewBreaker("notification-service", threshold, cooldown)
	publisher := notify.NewPublisher(notify.NewCaller(cfg.Notify), breaker, cfg.Notify)

	engagementService := service.NewEngagementService(engagementRepo, counterCache, blogClient, publisher)
	commentService := service.NewCommentService(engagementRepo, counterCache, blogClient, publisher)

	handlers := &api.HandlersGroup{
		EngagementHandler: handler.NewEngagementHandler(engagementService, commentService),
	}
	router := api.SetupEngagementRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, engagementService)
	if err != nil {
		return nil, err
	}

	counterRefreshJob := job.NewCounterRefreshJob(engagementRepo, counterCache)
	cronMgr := cron.NewCronManager(counterRefreshJob, nil)

	return &EngagementContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		Publisher:    publisher,
	}, nil
}

// NotificationContainer 通知服务的顶级组件
type NotificationContainer struct {
	Router              *gin.Engine
	CronMgr             *cron.Manager
	NotificationService service.NotificationService
}

func BuildNotificationApp(mongoDB *mongo.Database, cfg *config.Config) (*NotificationContainer, error) {
	inboxRepo := mongodb.NewInboxRepo(mongoDB)
	userClient := client.NewUserClient(cfg.Services.UserBaseURL)
	mailService := service.NewMailService(mail.NewSMTPSender(cfg.Mail))

	ttlHours := cfg.Idempotency.TTLHours
	if ttlHours <= 0 {
		ttlHours = 24
	}
	guard := idempotency.NewGuard(time.Duration(ttlHours) * time.Hour)

	notificationService := service.NewNotificationService(guard, mailService, inboxRepo, userClient)

	handlers := &api.HandlersGroup{
		NotificationHandler: handler.NewNotificationHandler(notificationService),
	}
	router := api.SetupNotificationRouter(handlers)

	sweepJob := job.NewIdempotencySweepJob(guard)
	cronMgr := cron.NewCronManager(nil, sweepJob)

	return &NotificationContainer{
		Router:              router,
		CronMgr:             cronMgr,
		NotificationService: notificationService,
	}, nil
}
