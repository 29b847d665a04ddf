package kvfakes

import (
	"sync"

	"github.com/needhomes/needhomes-go/kvstore"
)

var _ kvstore.Repo = (*FakeKV)(nil)

type FakeKV struct {
	values map[string][]byte
	lock   sync.RWMutex
}

func NewFakeKV() *FakeKV {
	return &FakeKV{
		values: make(map[string][]byte),
	}
}

func (kv *FakeKV) Get(key string) ([]byte, bool, error) {
	kv.lock.RLock()
	defer kv.lock.RUnlock()

	value, ok := kv.values[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (kv *FakeKV) Set(key string, value []byte) error {
	kv.lock.Lock()
	defer kv.lock.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	kv.values[key] = copied
	return nil
}

func (kv *FakeKV) Delete(key string) error {
	kv.lock.Lock()
	defer kv.lock.Unlock()

	delete(kv.values, key)
	return nil
}

func (kv *FakeKV) Close() error {
	return nil
}
