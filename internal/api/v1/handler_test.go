package v1

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/importer"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/excel"
	"github.com/njnj4101989-sudo/flipkart-payments/internal/service/session"
)

type testResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	h := NewHandler(session.NewStore(time.Hour, time.Hour), Options{
		LedgerDefaults: importer.DefaultLedgerOptions,
		MaxUploadBytes: 8 << 20,
	})
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r, h
}

func workbookFile(t *testing.T, names []string, sheets map[string][][]interface{}) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	for i, name := range names {
		if i == 0 {
			if err := wb.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("SetSheetName %s failed: %v", name, err)
			}
		} else if _, err := wb.NewSheet(name); err != nil {
			t.Fatalf("NewSheet %s failed: %v", name, err)
		}
		for r, row := range sheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			row := row
			if err := wb.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow %s failed: %v", name, err)
			}
		}
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func do(t *testing.T, r http.Handler, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func upload(t *testing.T, r http.Handler, path, filename string, data []byte, fields map[string]string) testResponse {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	_, _ = fw.Write(data)
	_ = mw.Close()

	return decode(t, do(t, r, http.MethodPost, path, body, mw.FormDataContentType()))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) testResponse {
	t.Helper()

	if w.Code != http.StatusOK {
		t.Fatalf("http status=%d body=%s", w.Code, w.Body.String())
	}
	var resp testResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v body=%s", err, w.Body.String())
	}
	return resp
}

func createSession(t *testing.T, r http.Handler) string {
	t.Helper()

	resp := decode(t, do(t, r, http.MethodPost, "/api/sessions", nil, ""))
	if resp.Code != 0 {
		t.Fatalf("create session: %+v", resp)
	}
	var st session.Status
	if err := json.Unmarshal(resp.Data, &st); err != nil || st.ID == "" {
		t.Fatalf("session status: %v %s", err, resp.Data)
	}
	return st.ID
}

func ledgerWorkbook(t *testing.T) []byte {
	return workbookFile(t, []string{"Report"}, map[string][][]interface{}{
		"Report": {
			{"LAXMIPATI settlement"},
			{"Order ID", "Invoice ID", "Sale Amount (Rs.)", "Payment Date", "Bank Settlement Value (Rs.)"},
			{"(Rs.)"},
			{"OD1", "INV100", "1000", "2024-01-15", "850"},
			{"OD2", "INV200", "2000", "2024-01-16", "1700"},
		},
	})
}

func sourcesWorkbook(t *testing.T) []byte {
	return workbookFile(t, []string{"ZTRA", "ZCN", "Claim"}, map[string][][]interface{}{
		"ZTRA": {
			{"CUSTOMER REFERENCE", "Billing No", "Total Amt"},
			{"INV100", "BN1", "300"},
			{"INV100", "", "200"},
		},
		"ZCN": {
			{"Invoice Reference Number", "Total Receivable"},
			{"INV100", "450"},
		},
		"Claim": {
			{"REFERENCE NO", "STATUS-1", "Approved Amount"},
			{"INV100", "Rejected", "0"},
			{"INV100", "Approved", "480"},
		},
	})
}

func TestAPI_EndToEnd(t *testing.T) {
	t.Parallel()

	r, h := newTestRouter(t)
	id := createSession(t, r)

	resp := upload(t, r, "/api/sessions/"+id+"/ledger", "ledger.xlsx", ledgerWorkbook(t), nil)
	if resp.Code != 0 {
		t.Fatalf("ledger upload: %+v", resp)
	}

	resp = upload(t, r, "/api/sessions/"+id+"/sources/combined", "sources.xlsx", sourcesWorkbook(t), nil)
	if resp.Code != 0 {
		t.Fatalf("combined upload: %+v", resp)
	}

	resp = decode(t, do(t, r, http.MethodPost, "/api/sessions/"+id+"/reconcile", nil, ""))
	if resp.Code != 0 {
		t.Fatalf("reconcile: %+v", resp)
	}
	var result struct {
		Columns []string                 `json:"columns"`
		Records []map[string]interface{} `json:"records"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(result.Records) != 2 || len(result.Columns) != 14 {
		t.Fatalf("records=%d columns=%d", len(result.Records), len(result.Columns))
	}
	first := result.Records[0]
	if first["ztransInvoice"] != "BN1" || first["ztransAmount"] != "500" || first["zgstr1"] != "450" ||
		first["claimStatus"] != "Approved" || first["claimApprovedAmount"] != "480" {
		t.Fatalf("first record=%v", first)
	}
	second := result.Records[1]
	if second["ztransAmount"] != "NA" || second["claimStatus"] != "NA" {
		t.Fatalf("second record=%v", second)
	}

	resp = decode(t, do(t, r, http.MethodPost, "/api/sessions/"+id+"/export", nil, ""))
	if resp.Code != 0 {
		t.Fatalf("export: %+v", resp)
	}
	var exp ExportResponse
	if err := json.Unmarshal(resp.Data, &exp); err != nil || exp.Token == "" {
		t.Fatalf("export response: %v %s", err, resp.Data)
	}
	if h.downloads.count() != 1 {
		t.Fatalf("downloads=%d", h.downloads.count())
	}

	w := do(t, r, http.MethodGet, exp.DownloadURL, nil, "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("download status=%d type=%s", w.Code, w.Header().Get("Content-Type"))
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) != 4 || sheets[3] != excel.SheetCombined {
		t.Fatalf("sheets=%v", sheets)
	}

	w = do(t, r, http.MethodGet, exp.DownloadURL, nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second download should fail, status=%d", w.Code)
	}
}

func TestAPI_ReconcileWithoutLedger(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	id := createSession(t, r)

	resp := decode(t, do(t, r, http.MethodPost, "/api/sessions/"+id+"/reconcile", nil, ""))
	if resp.Code != CodeNoLedger {
		t.Fatalf("unexpected response: %+v", resp)
	}
	resp = decode(t, do(t, r, http.MethodPost, "/api/sessions/"+id+"/export", nil, ""))
	if resp.Code != CodeNothingToExport {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAPI_UnknownSession(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	resp := decode(t, do(t, r, http.MethodGet, "/api/sessions/missing", nil, ""))
	if resp.Code != CodeSessionNotFound {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAPI_MissingSheetKeepsSession(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	id := createSession(t, r)

	if resp := upload(t, r, "/api/sessions/"+id+"/ledger", "ledger.xlsx", ledgerWorkbook(t), nil); resp.Code != 0 {
		t.Fatalf("ledger upload: %+v", resp)
	}

	resp := upload(t, r, "/api/sessions/"+id+"/sources/claim", "ledger.xlsx", ledgerWorkbook(t), nil)
	if resp.Code != CodeMalformedTable {
		t.Fatalf("unexpected response: %+v", resp)
	}

	resp = decode(t, do(t, r, http.MethodGet, "/api/sessions/"+id, nil, ""))
	var st session.Status
	if err := json.Unmarshal(resp.Data, &st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if len(st.Sources) != 1 || st.Sources[0].Rows != 2 {
		t.Fatalf("ledger should be untouched: %+v", st.Sources)
	}
}

func TestAPI_ImportOptionsValidation(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	id := createSession(t, r)

	cases := []map[string]string{
		{"headerRow": "4"},
		{"dataStartRow": "11"},
		{"headerRow": "x"},
		{"includeAnalysis": "maybe"},
	}
	for _, fields := range cases {
		resp := upload(t, r, "/api/sessions/"+id+"/ledger", "ledger.xlsx", ledgerWorkbook(t), fields)
		if resp.Code != CodeBadRequest {
			t.Fatalf("fields %v: unexpected response %+v", fields, resp)
		}
	}

	resp := upload(t, r, "/api/sessions/"+id+"/sources/unknown", "ledger.xlsx", ledgerWorkbook(t), nil)
	if resp.Code != CodeBadRequest {
		t.Fatalf("unknown kind: %+v", resp)
	}
}

func TestAPI_CustomHeaderOffsets(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	id := createSession(t, r)

	data := workbookFile(t, []string{"Data"}, map[string][][]interface{}{
		"Data": {
			{"Order ID", "Invoice ID", "Sale Amount"},
			{"OD1", "INV1", "10"},
		},
	})
	resp := upload(t, r, "/api/sessions/"+id+"/ledger", "plain.xlsx", data, map[string]string{
		"headerRow":       "0",
		"dataStartRow":    "1",
		"includeAnalysis": "true",
	})
	if resp.Code != 0 {
		t.Fatalf("upload: %+v", resp)
	}
	var body struct {
		Session session.Status `json:"session"`
	}
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Session.Sources) != 1 || body.Session.Sources[0].Rows != 1 {
		t.Fatalf("sources=%+v", body.Session.Sources)
	}
}

func TestAPI_Status(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	createSession(t, r)

	resp := decode(t, do(t, r, http.MethodGet, "/api/status", nil, ""))
	var st StatusResponse
	if err := json.Unmarshal(resp.Data, &st); err != nil || st.Sessions != 1 {
		t.Fatalf("status=%+v err=%v", st, err)
	}
}

func TestExportDownloadStore_Expiry(t *testing.T) {
	t.Parallel()

	s := newExportDownloadStore()
	token := s.put(exportDownload{filename: "a.xlsx", data: []byte("x")}, -time.Second)
	if _, ok := s.take(token); ok {
		t.Fatalf("expired token should be rejected")
	}

	token = s.put(exportDownload{filename: "b.xlsx"}, time.Minute)
	if item, ok := s.take(token); !ok || item.filename != "b.xlsx" {
		t.Fatalf("take failed")
	}
	if s.count() != 0 {
		t.Fatalf("token should be consumed")
	}
}
