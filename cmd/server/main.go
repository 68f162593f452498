package main

import (
	"log"
	"os"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"todo_backend/internal/app/router"
	todoadapters "todo_backend/internal/feature/todo/adapters"
	todohandler "todo_backend/internal/feature/todo/transport/handler"
	todousecase "todo_backend/internal/feature/todo/usecase"
	useradapters "todo_backend/internal/feature/user/adapters"
	userhandler "todo_backend/internal/feature/user/transport/handler"
	userusecase "todo_backend/internal/feature/user/usecase"
	"todo_backend/internal/platform/cache"
	"todo_backend/internal/platform/db"
	jwtmw "todo_backend/internal/platform/jwt"
	platformredis "todo_backend/internal/platform/redis"
)

// tokenLifetime is the fixed validity window of issued tokens.
const tokenLifetime = 3 * time.Hour

func main() {
	// db
	gormDB := db.OpenDB()

	// Redis（任意: 落ちていてもキャッシュなしで動作する）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// SECRET_KEYチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeySecret)
	if secret == "" {
		log.Println("[WARN] SECRET_KEY is not set. Set a strong secret in production.")
	}
	codec := jwtmw.NewCodec(secret, tokenLifetime)

	// Repository
	userRepo := useradapters.NewUserRepository(gormDB)
	todoRepo := todoadapters.NewTodoRepository(gormDB)

	// 名前一覧をRedisキャッシュでラップ
	cachedUserRepo := cache.NewCachingUserRepository(rdb, 5*time.Minute, userRepo, "names")

	// Usecase
	userUC := userusecase.NewUserUsecase(cachedUserRepo)
	todoUC := todousecase.NewTodoUsecase(todoRepo)

	// Handler
	userH := userhandler.NewUserHandler(userUC, codec)
	todoH := todohandler.NewTodoHandler(todoUC)

	// ルータ生成
	origins := strings.Split(getenvDefault("ALOWED_HOSTS", "*"), ",")
	r := router.NewRouter(codec, userH, todoH, origins)

	port := getenvDefault("PORT", "8080")
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
