package puzzle

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/e0087/matiate/common/config"
	"github.com/e0087/matiate/common/log"
	"github.com/e0087/matiate/runtime/game/engines/mahjong"
	"github.com/google/uuid"
)

// SessionManager 会话管理器
// 每个会话持有自己的随机源，种子由管理器的主随机源派生
type SessionManager struct {
	sessions  map[string]*Session // sessionID -> Session
	conf      config.PuzzleConf
	evaluator mahjong.Evaluator
	seeds     *rand.Rand
	mu        sync.RWMutex
}

// NewSessionManager 创建会话管理器，seed 相同则生成的题目序列相同
func NewSessionManager(conf config.PuzzleConf, evaluator mahjong.Evaluator, seed int64) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*Session),
		conf:      conf,
		evaluator: evaluator,
		seeds:     rand.New(rand.NewSource(seed)),
	}
}

// SetConf 热更新题目参数，只影响之后创建的会话
func (sm *SessionManager) SetConf(conf config.PuzzleConf) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.conf = conf
}

// deps 调用方需持有写锁
func (sm *SessionManager) deps() Deps {
	return Deps{
		Conf:      sm.conf,
		Evaluator: sm.evaluator,
		Rand:      rand.New(rand.NewSource(sm.seeds.Int63())),
	}
}

// RandomParams 按当前配置随机一组场况
func (sm *SessionManager) RandomParams() Params {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return RandomParams(sm.seeds, sm.conf)
}

// Create 创建会话
func (sm *SessionManager) Create(params Params) (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	id := uuid.NewString()
	s, err := NewSession(id, params, sm.deps())
	if err != nil {
		return nil, fmt.Errorf("创建会话失败: %w", err)
	}
	sm.sessions[id] = s
	log.Debug("SessionManager 创建会话 %s，当前会话数: %d", id, len(sm.sessions))
	return s, nil
}

// Get 获取会话
func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, exists := sm.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Restart 用同一个 ID 开一道全新的题，旧会话的状态不会保留
func (sm *SessionManager) Restart(id string, params Params) (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[id]; !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s, err := NewSession(id, params, sm.deps())
	if err != nil {
		return nil, fmt.Errorf("重开会话失败: %w", err)
	}
	sm.sessions[id] = s
	log.Debug("SessionManager 重开会话 %s", id)
	return s, nil
}

// Delete 删除会话
func (sm *SessionManager) Delete(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[id]; !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(sm.sessions, id)
	log.Debug("SessionManager 删除会话 %s", id)
	return nil
}

func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
