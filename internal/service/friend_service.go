// Package service exposes the application state over Connect RPC.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"connectrpc.com/connect"

	"github.com/mmynk/eatnsplit/internal/app"
	"github.com/mmynk/eatnsplit/internal/models"
	"github.com/mmynk/eatnsplit/internal/storage"
)

// FriendServiceName is the fully-qualified name of the service.
const FriendServiceName = "eatnsplit.v1.FriendService"

// Procedure paths.
const (
	GetViewProcedure         = "/" + FriendServiceName + "/GetView"
	ListFriendsProcedure     = "/" + FriendServiceName + "/ListFriends"
	ToggleAddFriendProcedure = "/" + FriendServiceName + "/ToggleAddFriend"
	AddFriendProcedure       = "/" + FriendServiceName + "/AddFriend"
	SelectFriendProcedure    = "/" + FriendServiceName + "/SelectFriend"
	SplitBillProcedure       = "/" + FriendServiceName + "/SplitBill"
	ListSettlementsProcedure = "/" + FriendServiceName + "/ListSettlements"
)

// FriendService implements the Connect FriendService on top of an App.
type FriendService struct {
	app *app.App
}

// NewFriendService creates a new FriendService driving the given App.
func NewFriendService(a *app.App) *FriendService {
	return &FriendService{app: a}
}

// NewFriendServiceHandler builds an HTTP handler serving every FriendService
// procedure. It returns the path prefix to mount it on.
func NewFriendServiceHandler(svc *FriendService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(opts, connect.WithCodec(jsonCodec{}))

	mux := http.NewServeMux()
	mux.Handle(GetViewProcedure, connect.NewUnaryHandler(GetViewProcedure, svc.GetView, opts...))
	mux.Handle(ListFriendsProcedure, connect.NewUnaryHandler(ListFriendsProcedure, svc.ListFriends, opts...))
	mux.Handle(ToggleAddFriendProcedure, connect.NewUnaryHandler(ToggleAddFriendProcedure, svc.ToggleAddFriend, opts...))
	mux.Handle(AddFriendProcedure, connect.NewUnaryHandler(AddFriendProcedure, svc.AddFriend, opts...))
	mux.Handle(SelectFriendProcedure, connect.NewUnaryHandler(SelectFriendProcedure, svc.SelectFriend, opts...))
	mux.Handle(SplitBillProcedure, connect.NewUnaryHandler(SplitBillProcedure, svc.SplitBill, opts...))
	mux.Handle(ListSettlementsProcedure, connect.NewUnaryHandler(ListSettlementsProcedure, svc.ListSettlements, opts...))

	return "/" + FriendServiceName + "/", mux
}

// toConnectError maps storage errors onto Connect codes.
func toConnectError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func (s *FriendService) view(ctx context.Context) (View, error) {
	v, err := s.app.View(ctx)
	if err != nil {
		slog.Error("Failed to render view", "error", err)
		return View{}, toConnectError(err)
	}
	return toView(v), nil
}

// GetView returns the current rendered state.
func (s *FriendService) GetView(ctx context.Context, req *connect.Request[GetViewRequest]) (*connect.Response[GetViewResponse], error) {
	v, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&GetViewResponse{View: v}), nil
}

// ListFriends returns the friend list in registry order.
func (s *FriendService) ListFriends(ctx context.Context, req *connect.Request[ListFriendsRequest]) (*connect.Response[ListFriendsResponse], error) {
	friends, err := s.app.Friends(ctx)
	if err != nil {
		slog.Error("ListFriends failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]Friend, len(friends))
	for i, f := range friends {
		out[i] = toFriend(f)
	}

	slog.Info("ListFriends successful", "count", len(out))

	return connect.NewResponse(&ListFriendsResponse{Friends: out}), nil
}

// ToggleAddFriend opens or closes the add-friend form.
func (s *FriendService) ToggleAddFriend(ctx context.Context, req *connect.Request[ToggleAddFriendRequest]) (*connect.Response[ToggleAddFriendResponse], error) {
	s.app.ToggleAddFriend()

	v, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&ToggleAddFriendResponse{View: v}), nil
}

// AddFriend fills the add-friend form and submits it, opening the form first
// if needed. Blank names are ignored and reported with Applied=false.
func (s *FriendService) AddFriend(ctx context.Context, req *connect.Request[AddFriendRequest]) (*connect.Response[AddFriendResponse], error) {
	slog.Info("AddFriend request received", "name", req.Msg.Name)

	if _, open := s.app.AddFriendDraft(); !open {
		s.app.ToggleAddFriend()
	}
	s.app.SetFriendName(req.Msg.Name)
	if req.Msg.Image != "" {
		s.app.SetFriendImage(req.Msg.Image)
	}

	friend, err := s.app.SubmitAddFriend(ctx)
	if err != nil {
		slog.Error("AddFriend failed", "error", err)
		return nil, toConnectError(err)
	}

	resp := &AddFriendResponse{Applied: friend != nil}
	if friend != nil {
		f := toFriend(*friend)
		resp.Friend = &f
	}
	if resp.View, err = s.view(ctx); err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// SelectFriend toggles the selection of a friend.
func (s *FriendService) SelectFriend(ctx context.Context, req *connect.Request[SelectFriendRequest]) (*connect.Response[SelectFriendResponse], error) {
	friendID := req.Msg.FriendID
	slog.Info("SelectFriend request received", "friend_id", friendID)

	if friendID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("friend_id required"))
	}

	if err := s.app.SelectFriend(ctx, friendID); err != nil {
		slog.Error("SelectFriend failed", "friend_id", friendID, "error", err)
		return nil, toConnectError(err)
	}

	v, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&SelectFriendResponse{View: v}), nil
}

// SplitBill fills the split-bill form and submits it.
//
// Fields the form refuses (a user share above the bill total, an unknown
// payer) are listed in Rejected; the form keeps its previous value for them.
func (s *FriendService) SplitBill(ctx context.Context, req *connect.Request[SplitBillRequest]) (*connect.Response[SplitBillResponse], error) {
	slog.Info("SplitBill request received",
		"friend_id", req.Msg.FriendID,
		"bill_total", req.Msg.BillTotal,
		"user_paid", req.Msg.UserPaid,
		"payer", req.Msg.Payer,
	)

	if req.Msg.FriendID != "" {
		if selected, ok := s.app.Selected(); !ok || selected != req.Msg.FriendID {
			if err := s.app.SelectFriend(ctx, req.Msg.FriendID); err != nil {
				slog.Error("SplitBill failed - could not select friend", "friend_id", req.Msg.FriendID, "error", err)
				return nil, toConnectError(err)
			}
		}
	}

	resp := &SplitBillResponse{}
	if _, open := s.app.BillDraft(); open {
		if !s.app.SetBillTotal(formatAmount(req.Msg.BillTotal)) {
			resp.Rejected = append(resp.Rejected, "bill_total")
		}
		if !s.app.SetUserPaid(formatAmount(req.Msg.UserPaid)) {
			resp.Rejected = append(resp.Rejected, "user_paid")
		}
		if req.Msg.Payer != "" && !s.app.SetPayer(models.Payer(req.Msg.Payer)) {
			resp.Rejected = append(resp.Rejected, "payer")
		}
	}

	settlement, err := s.app.SubmitSplitBill(ctx)
	if err != nil {
		slog.Error("SplitBill failed", "error", err)
		return nil, toConnectError(err)
	}

	if settlement != nil {
		resp.Applied = true
		st := toSettlement(*settlement)
		resp.Settlement = &st
		slog.Info("Bill split applied", "friend_id", settlement.FriendID, "delta", settlement.Delta)
	}
	if resp.View, err = s.view(ctx); err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// ListSettlements returns recorded bill splits, newest first.
func (s *FriendService) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	settlements, err := s.app.Settlements(ctx, req.Msg.FriendID)
	if err != nil {
		slog.Error("ListSettlements failed", "friend_id", req.Msg.FriendID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toSettlement(st)
	}

	slog.Info("ListSettlements successful", "friend_id", req.Msg.FriendID, "count", len(out))

	return connect.NewResponse(&ListSettlementsResponse{Settlements: out}), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
