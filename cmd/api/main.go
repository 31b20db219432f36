package main

import (
	"log"

	"Lee_Channel/internal/config"
	"Lee_Channel/internal/model"
	"Lee_Channel/internal/pkg"
	"Lee_Channel/internal/repository/mysql"
	"Lee_Channel/internal/repository/redis"
	"Lee_Channel/internal/router"
	"Lee_Channel/internal/service"
)

func main() {
	cfg := config.Load()
	pkg.SessionSecret = []byte(cfg.SessionSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		panic(err)
	}

	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Channel{},
		&model.ChannelMember{},
	); err != nil {
		panic(err)
	}

	// The session cache is optional; without redis every resolve goes to
	// mysql, which is correct just slower.
	var cache service.SessionCache
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Printf("redis unavailable, session cache disabled: %v", err)
	} else {
		cache = &redis.SessionCacheRepository{}
		defer redis.Close()
	}

	var events service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Printf("kafka unavailable, channel events disabled: %v", err)
		} else {
			events = producer
			defer producer.Close()
		}
	}

	users := &mysql.UserRepository{DB: mysql.DB}
	sessions := &mysql.SessionRepository{DB: mysql.DB}
	channels := &mysql.ChannelRepository{DB: mysql.DB}
	members := &mysql.ChannelMemberRepository{DB: mysql.DB}

	authSvc := service.NewAuthService(users, sessions, cache, cfg.SessionTTL)
	channelSvc := service.NewChannelService(channels, members, users, events)

	r := router.InitRouter(authSvc, channelSvc)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
