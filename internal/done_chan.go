package internal

import "sync"

type DoneChan chan struct{}

type DoneFunc func() DoneChan

// WrapWaitGroup returns a DoneChan that closes once wg.Wait() returns.
func WrapWaitGroup(wg *sync.WaitGroup) DoneChan {
	ret := make(DoneChan)
	go func() {
		wg.Wait()
		close(ret)
	}()
	return ret
}
