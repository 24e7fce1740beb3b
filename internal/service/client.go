package service

import (
	"context"

	"connectrpc.com/connect"
)

// Client is a typed client for FriendService.
type Client struct {
	getView         *connect.Client[GetViewRequest, GetViewResponse]
	listFriends     *connect.Client[ListFriendsRequest, ListFriendsResponse]
	toggleAddFriend *connect.Client[ToggleAddFriendRequest, ToggleAddFriendResponse]
	addFriend       *connect.Client[AddFriendRequest, AddFriendResponse]
	selectFriend    *connect.Client[SelectFriendRequest, SelectFriendResponse]
	splitBill       *connect.Client[SplitBillRequest, SplitBillResponse]
	listSettlements *connect.Client[ListSettlementsRequest, ListSettlementsResponse]
}

// NewClient creates a FriendService client for the server at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	opts = append(opts, connect.WithCodec(jsonCodec{}))
	return &Client{
		getView:         connect.NewClient[GetViewRequest, GetViewResponse](httpClient, baseURL+GetViewProcedure, opts...),
		listFriends:     connect.NewClient[ListFriendsRequest, ListFriendsResponse](httpClient, baseURL+ListFriendsProcedure, opts...),
		toggleAddFriend: connect.NewClient[ToggleAddFriendRequest, ToggleAddFriendResponse](httpClient, baseURL+ToggleAddFriendProcedure, opts...),
		addFriend:       connect.NewClient[AddFriendRequest, AddFriendResponse](httpClient, baseURL+AddFriendProcedure, opts...),
		selectFriend:    connect.NewClient[SelectFriendRequest, SelectFriendResponse](httpClient, baseURL+SelectFriendProcedure, opts...),
		splitBill:       connect.NewClient[SplitBillRequest, SplitBillResponse](httpClient, baseURL+SplitBillProcedure, opts...),
		listSettlements: connect.NewClient[ListSettlementsRequest, ListSettlementsResponse](httpClient, baseURL+ListSettlementsProcedure, opts...),
	}
}

// GetView calls FriendService.GetView.
func (c *Client) GetView(ctx context.Context, req *connect.Request[GetViewRequest]) (*connect.Response[GetViewResponse], error) {
	return c.getView.CallUnary(ctx, req)
}

// ListFriends calls FriendService.ListFriends.
func (c *Client) ListFriends(ctx context.Context, req *connect.Request[ListFriendsRequest]) (*connect.Response[ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

// ToggleAddFriend calls FriendService.ToggleAddFriend.
func (c *Client) ToggleAddFriend(ctx context.Context, req *connect.Request[ToggleAddFriendRequest]) (*connect.Response[ToggleAddFriendResponse], error) {
	return c.toggleAddFriend.CallUnary(ctx, req)
}

// AddFriend calls FriendService.AddFriend.
func (c *Client) AddFriend(ctx context.Context, req *connect.Request[AddFriendRequest]) (*connect.Response[AddFriendResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

// SelectFriend calls FriendService.SelectFriend.
func (c *Client) SelectFriend(ctx context.Context, req *connect.Request[SelectFriendRequest]) (*connect.Response[SelectFriendResponse], error) {
	return c.selectFriend.CallUnary(ctx, req)
}

// SplitBill calls FriendService.SplitBill.
func (c *Client) SplitBill(ctx context.Context, req *connect.Request[SplitBillRequest]) (*connect.Response[SplitBillResponse], error) {
	return c.splitBill.CallUnary(ctx, req)
}

// ListSettlements calls FriendService.ListSettlements.
func (c *Client) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}
