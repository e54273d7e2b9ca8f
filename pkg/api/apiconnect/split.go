package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairsplit/pkg/api"
)

// SplitServiceName is the fully-qualified name of the SplitService service.
const SplitServiceName = "fairsplit.v1.SplitService"

const (
	SplitServiceComputeFinalSplitsProcedure  = "/fairsplit.v1.SplitService/ComputeFinalSplits"
	SplitServiceComputePersonTotalsProcedure = "/fairsplit.v1.SplitService/ComputePersonTotals"
	SplitServiceSeedFromReceiptProcedure     = "/fairsplit.v1.SplitService/SeedFromReceipt"
)

// SplitServiceHandler settles bills without storing them.
type SplitServiceHandler interface {
	ComputeFinalSplits(context.Context, *connect.Request[api.ComputeFinalSplitsRequest]) (*connect.Response[api.ComputeFinalSplitsResponse], error)
	ComputePersonTotals(context.Context, *connect.Request[api.ComputePersonTotalsRequest]) (*connect.Response[api.ComputePersonTotalsResponse], error)
	SeedFromReceipt(context.Context, *connect.Request[api.SeedFromReceiptRequest]) (*connect.Response[api.SeedFromReceiptResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(handlerCodecs(), opts...)
	computeFinalSplits := connect.NewUnaryHandler(SplitServiceComputeFinalSplitsProcedure, svc.ComputeFinalSplits, opts...)
	computePersonTotals := connect.NewUnaryHandler(SplitServiceComputePersonTotalsProcedure, svc.ComputePersonTotals, opts...)
	seedFromReceipt := connect.NewUnaryHandler(SplitServiceSeedFromReceiptProcedure, svc.SeedFromReceipt, opts...)

	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SplitServiceComputeFinalSplitsProcedure:
			computeFinalSplits.ServeHTTP(w, r)
		case SplitServiceComputePersonTotalsProcedure:
			computePersonTotals.ServeHTTP(w, r)
		case SplitServiceSeedFromReceiptProcedure:
			seedFromReceipt.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SplitServiceClient calls a remote SplitService.
type SplitServiceClient interface {
	ComputeFinalSplits(context.Context, *connect.Request[api.ComputeFinalSplitsRequest]) (*connect.Response[api.ComputeFinalSplitsResponse], error)
	ComputePersonTotals(context.Context, *connect.Request[api.ComputePersonTotalsRequest]) (*connect.Response[api.ComputePersonTotalsResponse], error)
	SeedFromReceipt(context.Context, *connect.Request[api.SeedFromReceiptRequest]) (*connect.Response[api.SeedFromReceiptResponse], error)
}

// NewSplitServiceClient constructs a client for the service at baseURL,
// for example http://localhost:8080.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{clientCodec()}, opts...)
	return &splitServiceClient{
		computeFinalSplits:  connect.NewClient[api.ComputeFinalSplitsRequest, api.ComputeFinalSplitsResponse](httpClient, baseURL+SplitServiceComputeFinalSplitsProcedure, opts...),
		computePersonTotals: connect.NewClient[api.ComputePersonTotalsRequest, api.ComputePersonTotalsResponse](httpClient, baseURL+SplitServiceComputePersonTotalsProcedure, opts...),
		seedFromReceipt:     connect.NewClient[api.SeedFromReceiptRequest, api.SeedFromReceiptResponse](httpClient, baseURL+SplitServiceSeedFromReceiptProcedure, opts...),
	}
}

type splitServiceClient struct {
	computeFinalSplits  *connect.Client[api.ComputeFinalSplitsRequest, api.ComputeFinalSplitsResponse]
	computePersonTotals *connect.Client[api.ComputePersonTotalsRequest, api.ComputePersonTotalsResponse]
	seedFromReceipt     *connect.Client[api.SeedFromReceiptRequest, api.SeedFromReceiptResponse]
}

func (c *splitServiceClient) ComputeFinalSplits(ctx context.Context, req *connect.Request[api.ComputeFinalSplitsRequest]) (*connect.Response[api.ComputeFinalSplitsResponse], error) {
	return c.computeFinalSplits.CallUnary(ctx, req)
}

func (c *splitServiceClient) ComputePersonTotals(ctx context.Context, req *connect.Request[api.ComputePersonTotalsRequest]) (*connect.Response[api.ComputePersonTotalsResponse], error) {
	return c.computePersonTotals.CallUnary(ctx, req)
}

func (c *splitServiceClient) SeedFromReceipt(ctx context.Context, req *connect.Request[api.SeedFromReceiptRequest]) (*connect.Response[api.SeedFromReceiptResponse], error) {
	return c.seedFromReceipt.CallUnary(ctx, req)
}
