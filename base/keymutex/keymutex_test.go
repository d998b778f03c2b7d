package keymutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type keyMutexSuite struct {
	suite.Suite
}

func TestKeyMutexSuite(t *testing.T) {
	suite.Run(t, new(keyMutexSuite))
}

func (s *keyMutexSuite) TestSerializesSameKey() {
	m := New()

	const workers = 16
	const rounds = 100

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				m.Lock("auction-1")
				counter++
				m.Unlock("auction-1")
			}
		}()
	}
	wg.Wait()

	s.Equal(workers*rounds, counter)
}

func (s *keyMutexSuite) TestIndependentKeysDoNotBlock() {
	m := New()

	m.Lock("a")

	done := make(chan struct{})
	go func() {
		m.Lock("b")
		m.Unlock("b")
		close(done)
	}()

	<-done
	m.Unlock("a")
}

func (s *keyMutexSuite) TestEntryDroppedAfterLastUnlock() {
	m := New()

	m.Lock("a")
	m.Unlock("a")

	m.mu.Lock()
	defer m.mu.Unlock()
	s.Empty(m.locks)
}
