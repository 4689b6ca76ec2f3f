package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/e0087/matiate/common/config"
	"github.com/e0087/matiate/common/log"
	"github.com/e0087/matiate/runtime/game/engines/mahjong"
	"github.com/e0087/matiate/runtime/game/engines/puzzle"
)

const helpText = `命令:
  <回车> / n  推进一步（有和了机会时视为见逃）
  r           荣和
  t           自摸
  w           显示听牌
  new         新的一题
  help        显示帮助
  quit        退出`

// Options 命令行传入的出题参数，Kan 为 -1、Riichi 为 nil 时随机
type Options struct {
	Seed   int64
	Kan    int
	Riichi *bool
}

// Trainer 终端训练器：一个会话对应当前这道题
type Trainer struct {
	opts      Options
	manager   *puzzle.SessionManager
	session   *puzzle.Session
	renderer  *Renderer
	out       io.Writer
	showWaits bool
}

// NewTrainer 按配置创建求值器与会话管理器，并生成第一道题
func NewTrainer(conf *config.Config, opts Options, out io.Writer) (*Trainer, error) {
	searcher, err := mahjong.NewCachedSearcher(conf.Cache)
	if err != nil {
		return nil, fmt.Errorf("创建求值缓存失败: %w", err)
	}
	t := &Trainer{
		opts:     opts,
		manager:  puzzle.NewSessionManager(conf.Puzzle, mahjong.NewEngine(searcher), opts.Seed),
		renderer: NewRenderer(),
		out:      out,
	}
	if err := t.newPuzzle(); err != nil {
		return nil, err
	}
	return t, nil
}

// SetConf 配置热更新，下一题生效
func (t *Trainer) SetConf(conf *config.Config) {
	t.manager.SetConf(conf.Puzzle)
}

func (t *Trainer) params() puzzle.Params {
	p := t.manager.RandomParams()
	if t.opts.Kan >= 0 {
		p.KanCount = t.opts.Kan
	}
	if t.opts.Riichi != nil {
		p.Riichi = *t.opts.Riichi
	}
	return p
}

func (t *Trainer) newPuzzle() error {
	var (
		s   *puzzle.Session
		err error
	)
	if t.session == nil {
		s, err = t.manager.Create(t.params())
	} else {
		s, err = t.manager.Restart(t.session.ID(), t.params())
	}
	if err != nil {
		return err
	}
	t.session = s
	t.showWaits = false
	return nil
}

// HandleCommand 执行一条命令，返回是否退出
func (t *Trainer) HandleCommand(cmd string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case "", "n":
		if _, err := t.session.Advance(); err != nil {
			if errors.Is(err, puzzle.ErrPuzzleResolved) {
				t.println("本题已结束，输入 new 开始新的一题")
				return false, nil
			}
			return false, err
		}
	case "r":
		return false, t.claim(puzzle.ClaimRon)
	case "t":
		return false, t.claim(puzzle.ClaimTsumo)
	case "w":
		t.showWaits = true
	case "new":
		if err := t.newPuzzle(); err != nil {
			return false, err
		}
	case "help":
		t.println(helpText)
		return false, nil
	case "quit", "q":
		return true, nil
	default:
		t.println("未知命令，输入 help 查看帮助")
		return false, nil
	}
	t.Render()
	return false, nil
}

func (t *Trainer) claim(kind puzzle.ClaimKind) error {
	_, err := t.session.Claim(kind)
	var rejected *puzzle.RejectedError
	switch {
	case err == nil, errors.As(err, &rejected):
		t.Render()
		return nil
	case errors.Is(err, puzzle.ErrNoActiveOpportunity):
		t.println("现在没有可以和的牌")
		return nil
	case errors.Is(err, puzzle.ErrPuzzleResolved):
		t.println("本题已结束，输入 new 开始新的一题")
		return nil
	default:
		return err
	}
}

// Render 输出当前牌桌
func (t *Trainer) Render() {
	var waits []mahjong.Tile
	if t.showWaits {
		waits = t.session.WaitingHand().Waits
	}
	t.println(t.renderer.Render(t.session.Snapshot(), waits))
}

func (t *Trainer) println(s string) {
	_, _ = fmt.Fprintln(t.out, s)
}

// Run 读取标准输入驱动训练器，直到 quit、EOF 或收到中断信号
func Run(ctx context.Context, opts Options) error {
	conf := config.Current()
	trainer, err := NewTrainer(conf, opts, os.Stdout)
	if err != nil {
		return err
	}
	config.OnChange(func(next *config.Config) {
		log.SetLevel(next.Log.Level)
		trainer.SetConf(next)
		log.Info("配置已更新，下一题生效")
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-sigCh:
			fmt.Println()
			cancel()
			// 阻塞在 ReadString 上的主循环靠关闭 stdin 退出
			_ = os.Stdin.Close()
		case <-ctx.Done():
		}
	}()

	trainer.println(helpText)
	trainer.Render()
	return inputLoop(ctx, trainer, os.Stdin)
}

func inputLoop(ctx context.Context, trainer *Trainer, in io.Reader) error {
	reader := bufio.NewReader(in)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		fmt.Fprint(trainer.out, "> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("读取输入失败: %w", err)
		}

		quit, err := trainer.HandleCommand(line)
		if err != nil {
			log.Error("命令执行失败: %v", err)
		}
		if quit {
			return nil
		}
	}
}
