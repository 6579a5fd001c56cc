package driven

import (
	"context"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

// Provider performs the network calls to the statistics API.
// Implementations own transport concerns: authentication, throttling,
// timeouts and transient-failure retries. The core only produces the
// parameters and consumes the raw payload.
type Provider interface {
	// Data fetches the observations selected by the parameter set.
	Data(ctx context.Context, params domain.ParamSet) (*domain.Message, error)

	// Dimensions discovers the dataflow's ordered dimension list from the
	// provider's metadata. The returned list includes the time-period
	// pseudo-dimension exactly as the provider reports it; callers prune
	// it before building filter paths.
	Dimensions(ctx context.Context) ([]string, error)
}
