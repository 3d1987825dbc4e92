package acl

import "context"

// healthName matches the service name given to the underlying
// [httpclient.Client] for tracing and metrics.
const healthName = "company-api"

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry].
func (c *CompanyClient) Name() string {
	return healthName
}

// HealthCheck reports the remote directory API's availability from the
// circuit breaker state: half-open is degraded and open is failing. No
// network call is made.
//
// A failing downstream does not make the service unready: the loader keeps
// the last good collection and queries keep being served from it.
func (c *CompanyClient) HealthCheck(ctx context.Context) error {
	return c.req.HealthCheck(ctx)
}
