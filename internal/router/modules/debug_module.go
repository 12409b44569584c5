package modules

import (
	"expvar"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fashion-studio/internal/container"
	"github.com/oksasatya/fashion-studio/internal/interface/middleware"
)

var publishSpoolSize sync.Once

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar panics on duplicate names
	publishSpoolSize.Do(func() {
		expvar.Publish("event_spool_size", expvar.Func(func() any {
			sp := container.GetSpool()
			if sp == nil {
				return 0
			}
			n, err := sp.Size()
			if err != nil {
				return -1
			}
			return n
		}))
	})

	// Public metrics endpoint (expvar), rate-limited per IP; in-cluster scrapers bypass
	rl := middleware.RateLimit(container.GetRedis(), middleware.Rule{
		Name:   "debug",
		Limit:  120,
		Window: time.Minute,
		Key:    middleware.KeyByIP(),
		Skip:   middleware.AllowPrivateIP(),
	})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
