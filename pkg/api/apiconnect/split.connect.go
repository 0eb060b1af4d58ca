// Package apiconnect wires the api messages to Connect handlers and clients.
package apiconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/pkg/api"
)

// SplitServiceName is the fully-qualified name of the SplitService service.
const SplitServiceName = "tabsplit.v1.SplitService"

const (
	SplitServiceCalculateSplitProcedure = "/tabsplit.v1.SplitService/CalculateSplit"
	SplitServiceCheckBillProcedure      = "/tabsplit.v1.SplitService/CheckBill"
	SplitServiceExportSummaryProcedure  = "/tabsplit.v1.SplitService/ExportSummary"
	SplitServiceImportReceiptProcedure  = "/tabsplit.v1.SplitService/ImportReceipt"
)

// jsonCodec replaces Connect's protojson codec so that plain Go structs can
// travel as application/json.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (jsonCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// SplitServiceClient is a client for the tabsplit.v1.SplitService service.
type SplitServiceClient interface {
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	CheckBill(context.Context, *connect.Request[api.CheckBillRequest]) (*connect.Response[api.CheckBillResponse], error)
	ExportSummary(context.Context, *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error)
	ImportReceipt(context.Context, *connect.Request[api.ImportReceiptRequest]) (*connect.Response[api.ImportReceiptResponse], error)
}

// NewSplitServiceClient constructs a client for the tabsplit.v1.SplitService
// service. Messages are always JSON encoded.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &splitServiceClient{
		calculateSplit: connect.NewClient[api.CalculateSplitRequest, api.CalculateSplitResponse](
			httpClient, baseURL+SplitServiceCalculateSplitProcedure, opts...),
		checkBill: connect.NewClient[api.CheckBillRequest, api.CheckBillResponse](
			httpClient, baseURL+SplitServiceCheckBillProcedure, opts...),
		exportSummary: connect.NewClient[api.ExportSummaryRequest, api.ExportSummaryResponse](
			httpClient, baseURL+SplitServiceExportSummaryProcedure, opts...),
		importReceipt: connect.NewClient[api.ImportReceiptRequest, api.ImportReceiptResponse](
			httpClient, baseURL+SplitServiceImportReceiptProcedure, opts...),
	}
}

type splitServiceClient struct {
	calculateSplit *connect.Client[api.CalculateSplitRequest, api.CalculateSplitResponse]
	checkBill      *connect.Client[api.CheckBillRequest, api.CheckBillResponse]
	exportSummary  *connect.Client[api.ExportSummaryRequest, api.ExportSummaryResponse]
	importReceipt  *connect.Client[api.ImportReceiptRequest, api.ImportReceiptResponse]
}

func (c *splitServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) CheckBill(ctx context.Context, req *connect.Request[api.CheckBillRequest]) (*connect.Response[api.CheckBillResponse], error) {
	return c.checkBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) ExportSummary(ctx context.Context, req *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error) {
	return c.exportSummary.CallUnary(ctx, req)
}

func (c *splitServiceClient) ImportReceipt(ctx context.Context, req *connect.Request[api.ImportReceiptRequest]) (*connect.Response[api.ImportReceiptResponse], error) {
	return c.importReceipt.CallUnary(ctx, req)
}

// SplitServiceHandler is implemented by the server side of
// tabsplit.v1.SplitService.
type SplitServiceHandler interface {
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	CheckBill(context.Context, *connect.Request[api.CheckBillRequest]) (*connect.Response[api.CheckBillResponse], error)
	ExportSummary(context.Context, *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error)
	ImportReceipt(context.Context, *connect.Request[api.ImportReceiptRequest]) (*connect.Response[api.ImportReceiptResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	calculateSplit := connect.NewUnaryHandler(SplitServiceCalculateSplitProcedure, svc.CalculateSplit, opts...)
	checkBill := connect.NewUnaryHandler(SplitServiceCheckBillProcedure, svc.CheckBill, opts...)
	exportSummary := connect.NewUnaryHandler(SplitServiceExportSummaryProcedure, svc.ExportSummary, opts...)
	importReceipt := connect.NewUnaryHandler(SplitServiceImportReceiptProcedure, svc.ImportReceipt, opts...)
	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SplitServiceCalculateSplitProcedure:
			calculateSplit.ServeHTTP(w, r)
		case SplitServiceCheckBillProcedure:
			checkBill.ServeHTTP(w, r)
		case SplitServiceExportSummaryProcedure:
			exportSummary.ServeHTTP(w, r)
		case SplitServiceImportReceiptProcedure:
			importReceipt.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
