package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
	"github.com/stampwallet/stamp-ledger/internal/core/ports"
)

type stubLoyaltyService struct {
	earnFn  func(ctx context.Context, session *domain.Session, in ports.EarnInput) (*ports.EarnResult, error)
	resetFn func(ctx context.Context, session *domain.Session, walletID string) (*domain.WalletState, error)
	getFn   func(ctx context.Context, storeID, walletID string) (*domain.WalletState, error)
	auditFn func(ctx context.Context, session *domain.Session) (*ports.AuditListing, error)
	stores  []domain.Store
}

func (s *stubLoyaltyService) ListStores(context.Context) []domain.Store { return s.stores }

func (s *stubLoyaltyService) GetLedger(ctx context.Context, storeID, walletID string) (*domain.WalletState, error) {
	return s.getFn(ctx, storeID, walletID)
}

func (s *stubLoyaltyService) Earn(ctx context.Context, session *domain.Session, in ports.EarnInput) (*ports.EarnResult, error) {
	return s.earnFn(ctx, session, in)
}

func (s *stubLoyaltyService) Reset(ctx context.Context, session *domain.Session, walletID string) (*domain.WalletState, error) {
	return s.resetFn(ctx, session, walletID)
}

func (s *stubLoyaltyService) ListAudit(ctx context.Context, session *domain.Session) (*ports.AuditListing, error) {
	return s.auditFn(ctx, session)
}

func errorsIsInvalidInput(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput)
}

var staff = &domain.Session{Token: "t", UserID: "u1", StoreID: "s1", Username: "alice", Role: domain.RoleStaff}

func TestLedgerHandler_Earn_Success(t *testing.T) {
	e := newEcho()
	amount, added, after := int64(2500), 2, 7
	stub := &stubLoyaltyService{
		earnFn: func(ctx context.Context, session *domain.Session, in ports.EarnInput) (*ports.EarnResult, error) {
			if session != staff || in.WalletID != "w1" || in.AmountCents != 2500 {
				t.Fatalf("unexpected args: %+v %+v", session, in)
			}
			return &ports.EarnResult{
				Entry: domain.AuditEntry{
					ID:          "a1",
					Timestamp:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					Type:        domain.AuditEarn,
					StoreID:     "s1",
					WalletID:    "w1",
					Actor:       session.Actor(),
					AmountCents: &amount,
					StampsAdded: &added,
					StampsAfter: &after,
				},
				StampCap: domain.StampCap,
			}, nil
		},
	}
	h := NewLedgerHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/earn", `{"walletId":"w1","amountCents":2500}`), rec)
	c.Set(SessionKey, staff)

	if err := h.Earn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["ok"] != true || resp["id"] != "a1" || resp["type"] != "EARN" || resp["walletId"] != "w1" {
		t.Fatalf("expected flattened audit entry, got %+v", resp)
	}
	if resp["stampsAfter"] != float64(7) || resp["stampCap"] != float64(domain.StampCap) {
		t.Fatalf("unexpected stamps: %+v", resp)
	}
}

func TestLedgerHandler_Earn_AmountDecoding(t *testing.T) {
	cases := []struct {
		body string
		want float64
		nan  bool
	}{
		{`{"walletId":"w","amountCents":1500}`, 1500, false},
		{`{"walletId":"w","amountCents":"1500"}`, 1500, false},
		{`{"walletId":"w","amountCents":10.5}`, 10.5, false},
		{`{"walletId":"w"}`, 0, true},
		{`{"walletId":"w","amountCents":null}`, 0, true},
		{`{"walletId":"w","amountCents":"abc"}`, 0, true},
		{`{"walletId":"w","amountCents":true}`, 0, true},
	}
	for _, tc := range cases {
		e := newEcho()
		var got float64
		stub := &stubLoyaltyService{
			earnFn: func(ctx context.Context, session *domain.Session, in ports.EarnInput) (*ports.EarnResult, error) {
				got = in.AmountCents
				return nil, domain.NewInputError("stop")
			},
		}
		c := e.NewContext(jsonRequest(http.MethodPost, "/earn", tc.body), httptest.NewRecorder())
		c.Set(SessionKey, staff)

		_ = NewLedgerHandler(stub).Earn(c)

		if tc.nan {
			if !math.IsNaN(got) {
				t.Errorf("%s: expected NaN, got %v", tc.body, got)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.body, tc.want, got)
		}
	}
}

func TestLedgerHandler_Earn_ErrorPropagates(t *testing.T) {
	e := newEcho()
	stub := &stubLoyaltyService{
		earnFn: func(ctx context.Context, session *domain.Session, in ports.EarnInput) (*ports.EarnResult, error) {
			return nil, domain.ErrRateLimited
		},
	}
	c := e.NewContext(jsonRequest(http.MethodPost, "/earn", `{"walletId":"w","amountCents":100}`), httptest.NewRecorder())
	c.Set(SessionKey, staff)

	if err := NewLedgerHandler(stub).Earn(c); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestLedgerHandler_Reset(t *testing.T) {
	e := newEcho()
	stub := &stubLoyaltyService{
		resetFn: func(ctx context.Context, session *domain.Session, walletID string) (*domain.WalletState, error) {
			return &domain.WalletState{StoreID: session.StoreID, WalletID: walletID, Stamps: 0, StampCap: domain.StampCap}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/wallet/reset", `{"walletId":"w9"}`), rec)
	c.Set(SessionKey, &domain.Session{StoreID: "s1", Role: domain.RoleManager})

	if err := NewLedgerHandler(stub).Reset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["ok"] != true || resp["storeId"] != "s1" || resp["walletId"] != "w9" || resp["stamps"] != float64(0) || resp["stampCap"] != float64(10) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestLedgerHandler_Get(t *testing.T) {
	e := newEcho()
	stub := &stubLoyaltyService{
		getFn: func(ctx context.Context, storeID, walletID string) (*domain.WalletState, error) {
			if storeID != "s1" || walletID != "w1" {
				t.Fatalf("unexpected args %q %q", storeID, walletID)
			}
			return &domain.WalletState{StoreID: storeID, WalletID: walletID, Stamps: 3, StampCap: 10}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ledger/w1?storeId=s1", nil), rec)
	c.SetPath("/ledger/:walletId")
	c.SetParamNames("walletId")
	c.SetParamValues("w1")

	if err := NewLedgerHandler(stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var state domain.WalletState
	_ = json.Unmarshal(rec.Body.Bytes(), &state)
	if state.Stamps != 3 || state.StampCap != 10 {
		t.Fatalf("unexpected payload: %+v", state)
	}
}

func TestLedgerHandler_Get_EscapedWalletID(t *testing.T) {
	e := newEcho()
	var got string
	stub := &stubLoyaltyService{
		getFn: func(ctx context.Context, storeID, walletID string) (*domain.WalletState, error) {
			got = walletID
			return &domain.WalletState{StoreID: storeID, WalletID: walletID}, nil
		},
	}
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ledger/a%2Fb?storeId=s1", nil), httptest.NewRecorder())
	c.SetParamNames("walletId")
	c.SetParamValues("a%2Fb")

	if err := NewLedgerHandler(stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "a/b" {
		t.Fatalf("expected decoded wallet a/b, got %q", got)
	}

	// Already decoded by the router: a literal percent survives.
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/ledger/a%25b?storeId=s1", nil), httptest.NewRecorder())
	c.SetParamNames("walletId")
	c.SetParamValues("a%b")
	if err := NewLedgerHandler(stub).Get(c); err != nil || got != "a%b" {
		t.Fatalf("expected a%%b unchanged, got %q (%v)", got, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/ledger/x?storeId=s1", nil)
	req.URL.RawPath = "/ledger/bad%zz"
	c = e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("walletId")
	c.SetParamValues("bad%zz")
	if err := NewLedgerHandler(stub).Get(c); !errorsIsInvalidInput(err) || err.Error() != "invalid walletId" {
		t.Fatalf("expected invalid walletId, got %v", err)
	}
}

func TestLedgerHandler_Audit_EmptyItemsIsArray(t *testing.T) {
	e := newEcho()
	stub := &stubLoyaltyService{
		auditFn: func(ctx context.Context, session *domain.Session) (*ports.AuditListing, error) {
			return &ports.AuditListing{StoreID: session.StoreID}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/audit", nil), rec)
	c.Set(SessionKey, &domain.Session{StoreID: "s2", Role: domain.RoleManager})

	if err := NewLedgerHandler(stub).Audit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"storeId\":\"s2\",\"items\":[]}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestStoreHandler_List(t *testing.T) {
	e := newEcho()
	stub := &stubLoyaltyService{stores: []domain.Store{{ID: "s1", Name: "One"}}}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/stores", nil), rec)

	if err := NewStoreHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"stores\":[{\"id\":\"s1\",\"name\":\"One\"}]}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}
