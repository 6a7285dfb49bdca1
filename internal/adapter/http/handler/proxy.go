package handler

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
)

const headerRequestID = "X-Request-ID"

// NewUIProxy forwards everything the gateway does not serve itself to the dashboard UI renderer.
// Request headers set by the middleware chain, such as the admin check marker, are forwarded as is.
func NewUIProxy(target string, log logger.Logger) (http.Handler, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse ui upstream url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("ui upstream url %q must be absolute", target)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(u)
			pr.SetXForwarded()
			pr.Out.Host = u.Host

			if reqID := wrap.RequestID(pr.In.Context()); reqID != "" {
				pr.Out.Header.Set(headerRequestID, reqID)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			ctx := wrap.WithAction(r.Context(), "ui_proxy")
			log.Error(ctx, "upstream proxy error", err, "target", u.Host, "path", r.URL.Path)

			errorResponse(w, http.StatusBadGateway, "dashboard ui is unavailable")
		},
	}

	return proxy, nil
}
