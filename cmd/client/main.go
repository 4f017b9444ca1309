package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/kiryu-dev/network-game/internal/domain"
	"github.com/kiryu-dev/network-game/pkg/utils"
)

var errBadInput = errors.New(`enter "x y" to add, "x y fromX fromY" to step or "q" to quit`)

func main() {
	host := flag.String("addr", "localhost:8080", "server address")
	opponent := flag.String("opponent", string(domain.HumanOpponent), "opponent: human or bot")
	clientUuid := flag.String("uuid", "", "client key, generated by the server when empty")
	flag.Parse()
	u := url.URL{
		Scheme:   "ws",
		Host:     *host,
		Path:     "/game",
		RawQuery: url.Values{domain.OpponentQuery: []string{*opponent}}.Encode(),
	}
	header := http.Header{}
	if *clientUuid != "" {
		header.Set(domain.ClientUuidHeader, *clientUuid)
	}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatal("dial: " + err.Error())
	}
	defer func() {
		_ = conn.Close()
	}()
	client := newClient(conn)
	if err := client.handleActions(); err != nil {
		log.Fatal(err)
	}
}

type client struct {
	conn    *websocket.Conn
	scanner *bufio.Scanner
	player  domain.Player
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:    conn,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

func (c *client) handleActions() error {
	for {
		msg := new(domain.Message)
		if err := c.conn.ReadJSON(msg); err != nil {
			return errors.WithMessage(err, "read json msg")
		}
		switch msg.Type {
		case domain.StartGame:
			if err := c.handleStartGameAction(msg); err != nil {
				return errors.WithMessage(err, "handle start game action")
			}
		case domain.RequestMove:
			if err := c.handleRequestMoveAction(); err != nil {
				return errors.WithMessage(err, "handle request move action")
			}
		case domain.PlayerMove:
			isGameFinished, err := c.handlePlayerMoveAction(msg)
			if err != nil {
				return errors.WithMessage(err, "handle player move action")
			}
			if isGameFinished {
				return nil
			}
		case domain.Walkover:
			v, err := utils.UnmarshalJson[domain.WalkoverPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'WalkoverPayload' type")
			}
			fmt.Println(v.GameResult)
			return nil
		}
	}
}

func (c *client) handleStartGameAction(msg *domain.Message) error {
	v, err := utils.UnmarshalJson[domain.StartGamePayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'StartGamePayload' type")
	}
	c.player = v.Player
	printBoard(v.Board)
	fmt.Printf("You play %v\n", c.player)
	return nil
}

func (c *client) handleRequestMoveAction() error {
	var (
		move domain.Move
		err  error
	)
	for {
		fmt.Printf("Your move: ")
		move, err = c.readMove()
		if err == nil {
			break
		}
		fmt.Println(err)
	}
	err = c.conn.WriteJSON(domain.Message{
		Type: domain.PlayerMove,
		Payload: domain.PlayerMovePayload{
			Player: c.player,
			Move:   move,
		},
	})
	if err != nil {
		return errors.WithMessage(err, "write json msg")
	}
	return nil
}

func (c *client) handlePlayerMoveAction(msg *domain.Message) (isGameFinished bool, err error) {
	v, err := utils.UnmarshalJson[domain.PlayerMovePayload](msg.Payload)
	if err != nil {
		return false, errors.WithMessage(err, "unmarshal json to 'PlayerMovePayload' type")
	}
	printBoard(v.Board)
	fmt.Printf("%v: %v\n", v.Player, v.Move)
	if v.GameResult != nil {
		if len(v.Network) > 0 {
			fmt.Printf("Network: %v\n", v.Network)
		}
		fmt.Println(*v.GameResult)
		return true, nil
	}
	if v.IsMoveRequested {
		if err := c.handleRequestMoveAction(); err != nil {
			return false, errors.WithMessage(err, "handle request move action")
		}
	}
	return false, nil
}

func (c *client) readMove() (domain.Move, error) {
	if ok := c.scanner.Scan(); !ok {
		if err := c.scanner.Err(); err != nil {
			return domain.Move{}, err
		}
		return domain.QuitMove(), nil
	}
	return parseMove(c.scanner.Text())
}

func parseMove(line string) (domain.Move, error) {
	fields := strings.Fields(line)
	if len(fields) == 1 && strings.EqualFold(fields[0], "q") {
		return domain.QuitMove(), nil
	}
	if len(fields) != 2 && len(fields) != 4 {
		return domain.Move{}, errBadInput
	}
	coords := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v >= domain.BoardSize {
			return domain.Move{}, errBadInput
		}
		coords[i] = v
	}
	if len(coords) == 2 {
		return domain.AddMove(coords[0], coords[1]), nil
	}
	return domain.StepMove(coords[0], coords[1], coords[2], coords[3]), nil
}

func printBoard(board string) {
	fmt.Printf("\033[H\033[J")
	fmt.Println("  0 1 2 3 4 5 6 7")
	for y, row := range strings.Split(strings.TrimSuffix(board, "\n"), "\n") {
		fmt.Printf("%d %s\n", y, row)
	}
}
