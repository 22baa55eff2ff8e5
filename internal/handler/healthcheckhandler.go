package handler

import (
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func HealthCheckHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := svcCtx.Version
		if version == "" {
			version = "dev"
		}
		httputil.OkJSON(w, &types.HealthResponse{
			Status:  "ok",
			Version: version,
		})
	}
}
