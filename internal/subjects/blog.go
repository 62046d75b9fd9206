package subjects

import (
	"fmt"
	"sync"

	"github.com/brianly1003/notifyhub/internal/registry"
)

// Blog publishes post titles to its subscribers and keeps every post.
type Blog struct {
	observable[string]

	mu    sync.Mutex
	posts []string
}

// NewBlog creates an empty blog.
func NewBlog(opts ...registry.Option) *Blog {
	return &Blog{observable: newObservable[string]("blog", opts...)}
}

// AddPost records title and notifies subscribers about it. The post is
// recorded only if the blog state is committed, and posts are recorded in
// the order subscribers receive them.
func (b *Blog) AddPost(title string) error {
	err := b.reg.SetStateWith(title, func() {
		b.mu.Lock()
		b.posts = append(b.posts, title)
		b.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("add post %q: %w", title, err)
	}
	return nil
}

// Posts returns every post in publication order.
func (b *Blog) Posts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]string, len(b.posts))
	copy(result, b.posts)
	return result
}
