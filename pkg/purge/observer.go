package purge

// Observer is notified as each record is processed.
type Observer interface {
	Deleted(Entry)
	Failed(Failure)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnDeleted func(Entry)
	OnFailed  func(Failure)
}

// Deleted implements Observer.
func (o ObserverFuncs) Deleted(e Entry) {
	if o.OnDeleted != nil {
		o.OnDeleted(e)
	}
}

// Failed implements Observer.
func (o ObserverFuncs) Failed(f Failure) {
	if o.OnFailed != nil {
		o.OnFailed(f)
	}
}

type nopObserver struct{}

func (nopObserver) Deleted(Entry) {}
func (nopObserver) Failed(Failure) {}
