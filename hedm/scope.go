package hedm

import "io"

// scope releases the handles added to it in reverse order. Close errors are
// logged and never replace the error being returned.
type scope struct {
	log     *Logger
	handles []scoped
}

type scoped struct {
	path string
	c    io.Closer
}

func newScope(log *Logger) *scope {
	return &scope{log: log}
}

func (s *scope) add(path string, c io.Closer) {
	s.handles = append(s.handles, scoped{path: path, c: c})
}

func (s *scope) release() {
	for i := len(s.handles) - 1; i >= 0; i-- {
		h := s.handles[i]
		s.log.LogClose(h.path, h.c.Close())
	}
	s.handles = nil
}
