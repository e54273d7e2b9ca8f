package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairsplit/pkg/api"
)

// HistoryServiceName is the fully-qualified name of the HistoryService service.
const HistoryServiceName = "fairsplit.v1.HistoryService"

const (
	HistoryServiceSaveBillProcedure   = "/fairsplit.v1.HistoryService/SaveBill"
	HistoryServiceListBillsProcedure  = "/fairsplit.v1.HistoryService/ListBills"
	HistoryServiceGetBillProcedure    = "/fairsplit.v1.HistoryService/GetBill"
	HistoryServiceDeleteBillProcedure = "/fairsplit.v1.HistoryService/DeleteBill"
)

// HistoryServiceHandler stores a signed-in user's recent bills.
type HistoryServiceHandler interface {
	SaveBill(context.Context, *connect.Request[api.SaveBillRequest]) (*connect.Response[api.SaveBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
}

// NewHistoryServiceHandler builds an HTTP handler from the service implementation.
func NewHistoryServiceHandler(svc HistoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(handlerCodecs(), opts...)
	saveBill := connect.NewUnaryHandler(HistoryServiceSaveBillProcedure, svc.SaveBill, opts...)
	listBills := connect.NewUnaryHandler(HistoryServiceListBillsProcedure, svc.ListBills, opts...)
	getBill := connect.NewUnaryHandler(HistoryServiceGetBillProcedure, svc.GetBill, opts...)
	deleteBill := connect.NewUnaryHandler(HistoryServiceDeleteBillProcedure, svc.DeleteBill, opts...)

	return "/" + HistoryServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case HistoryServiceSaveBillProcedure:
			saveBill.ServeHTTP(w, r)
		case HistoryServiceListBillsProcedure:
			listBills.ServeHTTP(w, r)
		case HistoryServiceGetBillProcedure:
			getBill.ServeHTTP(w, r)
		case HistoryServiceDeleteBillProcedure:
			deleteBill.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// HistoryServiceClient calls a remote HistoryService.
type HistoryServiceClient interface {
	SaveBill(context.Context, *connect.Request[api.SaveBillRequest]) (*connect.Response[api.SaveBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
}

// NewHistoryServiceClient constructs a client for the service at baseURL.
func NewHistoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) HistoryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{clientCodec()}, opts...)
	return &historyServiceClient{
		saveBill:   connect.NewClient[api.SaveBillRequest, api.SaveBillResponse](httpClient, baseURL+HistoryServiceSaveBillProcedure, opts...),
		listBills:  connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+HistoryServiceListBillsProcedure, opts...),
		getBill:    connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+HistoryServiceGetBillProcedure, opts...),
		deleteBill: connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](httpClient, baseURL+HistoryServiceDeleteBillProcedure, opts...),
	}
}

type historyServiceClient struct {
	saveBill   *connect.Client[api.SaveBillRequest, api.SaveBillResponse]
	listBills  *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	getBill    *connect.Client[api.GetBillRequest, api.GetBillResponse]
	deleteBill *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
}

func (c *historyServiceClient) SaveBill(ctx context.Context, req *connect.Request[api.SaveBillRequest]) (*connect.Response[api.SaveBillResponse], error) {
	return c.saveBill.CallUnary(ctx, req)
}

func (c *historyServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *historyServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *historyServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}
