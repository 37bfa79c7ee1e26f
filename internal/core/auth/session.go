package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "cafe_session"
	keyUserID   = "user_id"
)

// Sessions 签名 cookie 会话：只存 user_id 和 flash 消息
type Sessions struct {
	store sessions.Store
}

func NewSessions(secret []byte, maxAgeSec int, secure bool) *Sessions {
	st := sessions.NewCookieStore(secret)
	st.MaxAge(maxAgeSec)
	st.Options.Path = "/"
	st.Options.HttpOnly = true
	st.Options.Secure = secure
	st.Options.SameSite = http.SameSiteLaxMode
	return &Sessions{store: st}
}

// session 签名校验失败时 gorilla 仍返回一个新会话，当匿名处理
func (s *Sessions) session(r *http.Request) *sessions.Session {
	sess, _ := s.store.Get(r, sessionName)
	return sess
}

func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, uid uint) error {
	sess := s.session(r)
	sess.Values[keyUserID] = uid
	return sess.Save(r, w)
}

func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	delete(sess.Values, keyUserID)
	return sess.Save(r, w)
}

// UserID 0 表示匿名
func (s *Sessions) UserID(r *http.Request) uint {
	uid, _ := s.session(r).Values[keyUserID].(uint)
	return uid
}

func (s *Sessions) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	sess := s.session(r)
	sess.AddFlash(msg)
	return sess.Save(r, w)
}

// Flashes 取出即清空
func (s *Sessions) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess := s.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			out = append(out, m)
		}
	}
	return out
}
