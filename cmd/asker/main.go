// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/pricewise"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	db, err := pricewise.NewDatabase("./products_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	retriever, err := db.NewRetriever()
	if err != nil {
		panic(err)
	}

	question := "a wireless mouse under $50"
	if len(os.Args) > 1 {
		question = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	response, err := retriever.AnswerQuery(ctx, question, 5)
	if err != nil {
		panic(err)
	}

	fmt.Println(response.Answer)
	if len(response.Sources) > 0 {
		fmt.Printf("\nSources (%d):\n", len(response.Sources))
		for i, source := range response.Sources {
			fmt.Printf("%d: [%0.3f] %s\n", i+1, source.Score, source.Excerpt)
		}
	}
}
