package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ShreyasChakki/Servon-sub001/internal/domain/entity"
	"github.com/ShreyasChakki/Servon-sub001/pkg/errors"
)

// In-memory repository fakes. Message timestamps are driven by a
// counter so ordering is deterministic.

type fakeMessageRepo struct {
	messages []*entity.Message
	seq      int
	failure  error
}

var fakeEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	if r.failure != nil {
		return r.failure
	}
	r.seq++
	message.ID = fmt.Sprintf("m%d", r.seq)
	message.CreatedAt = fakeEpoch.Add(time.Duration(r.seq) * time.Second)
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, error) {
	var all []*entity.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			all = append(all, m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeMessageRepo) MarkAllRead(ctx context.Context, conversationID, receiverID string) (int, error) {
	now := time.Now()
	count := 0
	for _, m := range r.messages {
		if m.ConversationID == conversationID && m.ReceiverID == receiverID && m.ReadAt == nil {
			readAt := now
			m.ReadAt = &readAt
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) CountUnread(ctx context.Context, conversationID, receiverID string) (int, error) {
	count := 0
	for _, m := range r.messages {
		if m.ConversationID == conversationID && m.ReceiverID == receiverID && m.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) Latest(ctx context.Context, conversationID string) (*entity.Message, error) {
	var latest *entity.Message
	for _, m := range r.messages {
		if m.ConversationID != conversationID {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
		}
	}
	return latest, nil
}

func (r *fakeMessageRepo) DistinctConversationIDs(ctx context.Context, userID string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range r.messages {
		if m.SenderID != userID && m.ReceiverID != userID {
			continue
		}
		if !seen[m.ConversationID] {
			seen[m.ConversationID] = true
			ids = append(ids, m.ConversationID)
		}
	}
	return ids, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var users []*entity.User
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

type fakeQuotationRepo struct {
	quotations map[string]*entity.Quotation
}

func newFakeQuotationRepo(quotations ...*entity.Quotation) *fakeQuotationRepo {
	r := &fakeQuotationRepo{quotations: make(map[string]*entity.Quotation)}
	for _, q := range quotations {
		r.quotations[q.ID] = q
	}
	return r
}

func (r *fakeQuotationRepo) Create(ctx context.Context, quotation *entity.Quotation) error {
	if quotation.ID == "" {
		quotation.ID = fmt.Sprintf("q%d", len(r.quotations)+1)
	}
	quotation.CreatedAt = time.Now()
	r.quotations[quotation.ID] = quotation
	return nil
}

func (r *fakeQuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	quotation, ok := r.quotations[id]
	if !ok {
		return nil, errors.NotFound("Quotation", nil)
	}
	return quotation, nil
}

func (r *fakeQuotationRepo) Update(ctx context.Context, quotation *entity.Quotation) error {
	r.quotations[quotation.ID] = quotation
	return nil
}

func (r *fakeQuotationRepo) ListByServiceRequest(ctx context.Context, serviceRequestID string) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, q := range r.quotations {
		if q.ServiceRequestID == serviceRequestID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuotationRepo) ListByParticipant(ctx context.Context, userID string, statuses []string) ([]*entity.Quotation, error) {
	allowed := make(map[string]bool)
	for _, s := range statuses {
		allowed[s] = true
	}

	var out []*entity.Quotation
	for _, q := range r.quotations {
		if q.VendorID != userID && q.CustomerID != userID {
			continue
		}
		if len(statuses) > 0 && !allowed[q.Status] {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeServiceRequestRepo struct {
	requests map[string]*entity.ServiceRequest
}

func newFakeServiceRequestRepo(requests ...*entity.ServiceRequest) *fakeServiceRequestRepo {
	r := &fakeServiceRequestRepo{requests: make(map[string]*entity.ServiceRequest)}
	for _, req := range requests {
		r.requests[req.ID] = req
	}
	return r
}

func (r *fakeServiceRequestRepo) Create(ctx context.Context, request *entity.ServiceRequest) error {
	if request.ID == "" {
		request.ID = fmt.Sprintf("sr%d", len(r.requests)+1)
	}
	request.CreatedAt = time.Now()
	r.requests[request.ID] = request
	return nil
}

func (r *fakeServiceRequestRepo) GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, errors.NotFound("Service request", nil)
	}
	return request, nil
}

func (r *fakeServiceRequestRepo) Update(ctx context.Context, request *entity.ServiceRequest) error {
	r.requests[request.ID] = request
	return nil
}

func (r *fakeServiceRequestRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.ServiceRequest, error) {
	var out []*entity.ServiceRequest
	for _, req := range r.requests {
		if req.CustomerID == customerID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeServiceRequestRepo) ListOpen(ctx context.Context, limit, offset int) ([]*entity.ServiceRequest, error) {
	var out []*entity.ServiceRequest
	for _, req := range r.requests {
		if req.Status == entity.ServiceRequestOpen {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeConnectionRepo struct {
	connections map[string]*entity.Connection
}

func newFakeConnectionRepo(connections ...*entity.Connection) *fakeConnectionRepo {
	r := &fakeConnectionRepo{connections: make(map[string]*entity.Connection)}
	for _, c := range connections {
		r.connections[c.ID] = c
	}
	return r
}

func (r *fakeConnectionRepo) Create(ctx context.Context, connection *entity.Connection) error {
	if connection.ID == "" {
		connection.ID = fmt.Sprintf("c%d", len(r.connections)+1)
	}
	connection.CreatedAt = time.Now()
	r.connections[connection.ID] = connection
	return nil
}

func (r *fakeConnectionRepo) GetByID(ctx context.Context, id string) (*entity.Connection, error) {
	connection, ok := r.connections[id]
	if !ok {
		return nil, errors.NotFound("Connection", nil)
	}
	return connection, nil
}

func (r *fakeConnectionRepo) Update(ctx context.Context, connection *entity.Connection) error {
	r.connections[connection.ID] = connection
	return nil
}

func (r *fakeConnectionRepo) GetByPair(ctx context.Context, userA, userB string) (*entity.Connection, error) {
	var latest *entity.Connection
	for _, c := range r.connections {
		matches := (c.RequesterID == userA && c.ReceiverID == userB) ||
			(c.RequesterID == userB && c.ReceiverID == userA)
		if !matches {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, errors.NotFound("Connection", nil)
	}
	return latest, nil
}

func (r *fakeConnectionRepo) ListByParticipant(ctx context.Context, userID string, status string) ([]*entity.Connection, error) {
	var out []*entity.Connection
	for _, c := range r.connections {
		if c.RequesterID != userID && c.ReceiverID != userID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeAdvertisementRepo struct {
	ads      map[string]*entity.Advertisement
	requests []*entity.AdRequest
}

func newFakeAdvertisementRepo(ads ...*entity.Advertisement) *fakeAdvertisementRepo {
	r := &fakeAdvertisementRepo{ads: make(map[string]*entity.Advertisement)}
	for _, ad := range ads {
		r.ads[ad.ID] = ad
	}
	return r
}

func (r *fakeAdvertisementRepo) Create(ctx context.Context, ad *entity.Advertisement) error {
	if ad.ID == "" {
		ad.ID = fmt.Sprintf("a%d", len(r.ads)+1)
	}
	r.ads[ad.ID] = ad
	return nil
}

func (r *fakeAdvertisementRepo) GetByID(ctx context.Context, id string) (*entity.Advertisement, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, errors.NotFound("Advertisement", nil)
	}
	return ad, nil
}

func (r *fakeAdvertisementRepo) Update(ctx context.Context, ad *entity.Advertisement) error {
	r.ads[ad.ID] = ad
	return nil
}

func (r *fakeAdvertisementRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Advertisement, error) {
	var out []*entity.Advertisement
	for _, ad := range r.ads {
		if ad.Status == entity.AdvertisementActive {
			out = append(out, ad)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAdvertisementRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Advertisement, error) {
	var out []*entity.Advertisement
	for _, ad := range r.ads {
		if ad.VendorID == vendorID {
			out = append(out, ad)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAdvertisementRepo) CreateAdRequest(ctx context.Context, request *entity.AdRequest) error {
	if request.ID == "" {
		request.ID = fmt.Sprintf("ar%d", len(r.requests)+1)
	}
	r.requests = append(r.requests, request)
	return nil
}

func (r *fakeAdvertisementRepo) ListAdRequestsByAd(ctx context.Context, advertisementID string) ([]*entity.AdRequest, error) {
	var out []*entity.AdRequest
	for _, req := range r.requests {
		if req.AdvertisementID == advertisementID {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeWalletRepo struct {
	wallets      map[string]*entity.Wallet
	transactions []*entity.WalletTransaction
}

func newFakeWalletRepo(wallets ...*entity.Wallet) *fakeWalletRepo {
	r := &fakeWalletRepo{wallets: make(map[string]*entity.Wallet)}
	for _, w := range wallets {
		r.wallets[w.UserID] = w
	}
	return r
}

func (r *fakeWalletRepo) CreateWallet(ctx context.Context, wallet *entity.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = fmt.Sprintf("w%d", len(r.wallets)+1)
	}
	r.wallets[wallet.UserID] = wallet
	return nil
}

func (r *fakeWalletRepo) GetWalletByUserID(ctx context.Context, userID string) (*entity.Wallet, error) {
	wallet, ok := r.wallets[userID]
	if !ok {
		return nil, errors.NotFound("Wallet", nil)
	}
	return wallet, nil
}

func (r *fakeWalletRepo) UpdateWallet(ctx context.Context, wallet *entity.Wallet) error {
	r.wallets[wallet.UserID] = wallet
	return nil
}

func (r *fakeWalletRepo) CreateTransaction(ctx context.Context, transaction *entity.WalletTransaction) error {
	if transaction.ID == "" {
		transaction.ID = fmt.Sprintf("t%d", len(r.transactions)+1)
	}
	r.transactions = append(r.transactions, transaction)
	return nil
}

func (r *fakeWalletRepo) ListTransactionsByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.WalletTransaction, error) {
	var out []*entity.WalletTransaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}
