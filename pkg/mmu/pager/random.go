package pager

// Random evicts a uniformly chosen frame, drawn from the shared
// random stream. It is the only algorithm that advances that stream.
type Random struct{}

var _ Pager = (*Random)(nil)

// SelectVictim implements Pager.
func (r *Random) SelectVictim(ctx *Context) int {
	return ctx.Rand.Next(ctx.Frames.Len())
}
