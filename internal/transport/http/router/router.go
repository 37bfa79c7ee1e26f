package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"cafe-directory/internal/core/auth"
	"cafe-directory/internal/core/server"
	"cafe-directory/internal/service"
	"cafe-directory/internal/transport/http/handler"
	mdw "cafe-directory/internal/transport/http/middleware"
	"cafe-directory/internal/transport/http/view"
)

type Deps struct {
	Log      *zap.Logger
	Cafes    *service.CafeService
	Users    *service.UserService
	Reviews  *service.ReviewService
	Contact  *service.ContactService
	Sessions *auth.Sessions
	JWT      *auth.JWTer
	// APIKeys report-closed 接受的密钥
	APIKeys []string
	// Registry 为空时新建一个（测试里每个引擎各用各的）
	Registry *prometheus.Registry
}

func NewEngine(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	metrics := mdw.NewMetrics(d.Registry)

	r := server.NewRouter(d.Log)
	r.SetHTMLTemplate(view.MustNew())

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.RateLimitPerIP(mdw.NewIPLimiter(20, 40, 10*time.Minute)),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		metrics.Middleware(),
		mdw.AccessLog(d.Log),
		mdw.LoadUser(d.Sessions, d.Users, d.Log),
	)

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", metrics.Handler())

	web := handler.NewWeb(d.Cafes, d.Users, d.Reviews, d.Contact, d.Sessions, d.Log)
	mountPages(r, web)
	mountAdmin(r, web)
	mountAPI(r, d)

	r.NoRoute(web.NotFound)
	return r
}
