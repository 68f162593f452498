package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	todohandler "todo_backend/internal/feature/todo/transport/handler"
	userhandler "todo_backend/internal/feature/user/transport/handler"
	"todo_backend/internal/platform/http/handler"
	jwtmw "todo_backend/internal/platform/jwt"
)

func NewRouter(codec jwtmw.Codec, userH *userhandler.UserHandler, todoH *todohandler.TodoHandler,
	allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	// CORS: ALOWED_HOSTSで許可したオリジンのみ（デフォルトは*）
	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)

	api := r.Group("/api")
	// 全ユーザー名の一覧
	api.GET("/names", userH.Names)
	// 登録または再ログイン（トークン発行）
	api.POST("/user", userH.Register)

	// 認証必須のルート
	// クエリパラメータ token の検証ミドルウェアを適用
	auth := api.Group("")
	auth.Use(jwtmw.AuthRequired(codec))
	{
		auth.GET("/token", userH.RefreshToken)
		auth.GET("/user", userH.Me)
		auth.PUT("/user", userH.Update)
		auth.DELETE("/user", userH.DeleteMe)
		auth.GET("/user/todo", todoH.List)
		auth.POST("/user/todo", todoH.Create)
		auth.GET("/user/todo/:id", todoH.Get)
		auth.PUT("/user/todo/:id", todoH.Update)
		auth.DELETE("/user/todo/:id", todoH.Delete)
	}

	return r
}
