package settle

// noCopy is a type that prevents copying of values that embed it. It
// implements sync.Locker so that `go vet -copylocks` flags improper
// copies, the same trick used by sync.WaitGroup.
type noCopy struct{}

// Lock is a no-op implementation of sync.Locker.Lock.
func (*noCopy) Lock() {}

// Unlock is a no-op implementation of sync.Locker.Unlock.
func (*noCopy) Unlock() {}
