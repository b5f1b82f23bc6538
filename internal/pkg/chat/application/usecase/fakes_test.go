package usecase

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"

	nport "github.com/oy2/quicktalk/internal/infrastructure/notify/port"
	chat "github.com/oy2/quicktalk/internal/pkg/chat/domain"
	"github.com/oy2/quicktalk/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

// fakeDB is shared in-memory state behind the three repository fakes. It
// mimics the persistence contracts, including the pairwise unique constraint
// and the unread flips performed inside the append transaction.
type fakeDB struct {
	mu sync.Mutex

	users    map[int64]chat.User
	convs    map[int64]chat.Conversation
	pairKeys map[string]int64
	parts    map[int64]map[int64]*chat.Participant
	msgs     map[int64][]chat.Message

	nextConvID int64
	nextMsgID  int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    make(map[int64]chat.User),
		convs:    make(map[int64]chat.Conversation),
		pairKeys: make(map[string]int64),
		parts:    make(map[int64]map[int64]*chat.Participant),
		msgs:     make(map[int64][]chat.Message),
	}
}

func (db *fakeDB) addUser(id int64, name string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[id] = chat.User{ID: id, Name: name}
}

func (db *fakeDB) unread(conversationID, userID int64) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p, ok := db.parts[conversationID][userID]; ok {
		return p.Unread
	}
	return false
}

func (db *fakeDB) setUnread(conversationID, userID int64, unread bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p, ok := db.parts[conversationID][userID]; ok {
		p.Unread = unread
	}
}

func (db *fakeDB) messageCount(conversationID int64) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.msgs[conversationID])
}

func (db *fakeDB) conversationCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.convs)
}

type fakeUserRepo struct{ db *fakeDB }

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*chat.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if u, ok := r.db.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) ListOthers(_ context.Context, excludeID int64) ([]chat.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var users []chat.User
	for id, u := range r.db.users {
		if id != excludeID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type fakeConvRepo struct{ db *fakeDB }

func (r *fakeConvRepo) FindByID(_ context.Context, id int64) (*chat.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if c, ok := r.db.convs[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeConvRepo) FindPairwise(_ context.Context, userA, userB int64) (*chat.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if id, ok := r.db.pairKeys[chat.PairKey(userA, userB)]; ok {
		c := r.db.convs[id]
		return &c, nil
	}
	return nil, nil
}

func (r *fakeConvRepo) Create(_ context.Context, name string, participantIDs []int64, seed chat.Message) (*chat.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var pairKey string
	if len(participantIDs) == 2 {
		pairKey = chat.PairKey(participantIDs[0], participantIDs[1])
		if _, exists := r.db.pairKeys[pairKey]; exists {
			return nil, chat.ErrConversationExists
		}
	}

	r.db.nextConvID++
	c := chat.Conversation{ID: r.db.nextConvID, Name: name, CreatedAt: seed.CreatedAt}
	r.db.convs[c.ID] = c
	if pairKey != "" {
		r.db.pairKeys[pairKey] = c.ID
	}
	r.db.parts[c.ID] = make(map[int64]*chat.Participant)
	for _, uid := range participantIDs {
		r.db.parts[c.ID][uid] = &chat.Participant{ConversationID: c.ID, UserID: uid}
	}

	r.db.nextMsgID++
	seed.ID = r.db.nextMsgID
	seed.ConversationID = c.ID
	r.db.msgs[c.ID] = append(r.db.msgs[c.ID], seed)

	return &c, nil
}

func (r *fakeConvRepo) Participants(_ context.Context, conversationID int64) ([]chat.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var users []chat.User
	for uid := range r.db.parts[conversationID] {
		users = append(users, r.db.users[uid])
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeConvRepo) IsParticipant(_ context.Context, conversationID, userID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.parts[conversationID][userID]
	return ok, nil
}

func (r *fakeConvRepo) ListByUser(_ context.Context, userID int64) ([]chat.Participant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var rows []chat.Participant
	for _, members := range r.db.parts {
		if p, ok := members[userID]; ok {
			rows = append(rows, *p)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ConversationID < rows[j].ConversationID })
	return rows, nil
}

func (r *fakeConvRepo) MarkRead(_ context.Context, conversationID, userID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if p, ok := r.db.parts[conversationID][userID]; ok {
		p.Unread = false
	}
	return nil
}

type fakeMsgRepo struct{ db *fakeDB }

func (r *fakeMsgRepo) Append(_ context.Context, m chat.Message) (*chat.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextMsgID++
	m.ID = r.db.nextMsgID
	r.db.msgs[m.ConversationID] = append(r.db.msgs[m.ConversationID], m)

	for uid, p := range r.db.parts[m.ConversationID] {
		if uid != m.UserID {
			p.Unread = true
		}
	}
	return &m, nil
}

func (r *fakeMsgRepo) ListByConversation(_ context.Context, conversationID int64) ([]chat.MessageWithSender, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	msgs := append([]chat.Message(nil), r.db.msgs[conversationID]...)
	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
		}
		return msgs[i].ID < msgs[j].ID
	})

	out := make([]chat.MessageWithSender, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, chat.MessageWithSender{Message: m, Sender: r.db.users[m.UserID]})
	}
	return out, nil
}

func (r *fakeMsgRepo) LastByConversation(_ context.Context, conversationID int64) (*chat.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var last *chat.Message
	for i := range r.db.msgs[conversationID] {
		m := r.db.msgs[conversationID][i]
		if last == nil || m.CreatedAt.After(last.CreatedAt) ||
			(m.CreatedAt.Equal(last.CreatedAt) && m.ID > last.ID) {
			last = &m
		}
	}
	return last, nil
}

// fakePublisher records published events; Err makes every publish fail.
type fakePublisher struct {
	mu     sync.Mutex
	Err    error
	events []nport.Event
}

func (p *fakePublisher) PublishNewMessage(_ context.Context, ev nport.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []nport.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]nport.Event(nil), p.events...)
}
