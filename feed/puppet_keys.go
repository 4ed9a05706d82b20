package feed

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/eyelaser/constants"
)

// HandleKey applies a puppet control key and reports whether it was consumed
func (p *Puppet) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		p.Move(0, -constants.PuppetStep)
	case tcell.KeyDown:
		p.Move(0, constants.PuppetStep)
	case tcell.KeyLeft:
		p.Move(-constants.PuppetStep, 0)
	case tcell.KeyRight:
		p.Move(constants.PuppetStep, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			p.Turn(-constants.PuppetTurnStep)
		case 'd':
			p.Turn(constants.PuppetTurnStep)
		case ' ':
			p.Toggle()
		default:
			return false
		}
	default:
		return false
	}
	return true
}
