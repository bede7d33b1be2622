package niriwindows

type EventListener interface {
	ReadLine() (string, error)
}

type Sink interface {
	WriteStatus(status Status) error
}

type StatusCache interface {
	LastStatus() (Status, bool, error)
	SaveStatus(status Status) error
}
