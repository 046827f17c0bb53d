/*
 * Copyright (c) 2024, wmcodec contributors
 * All rights reserved.
 *
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions are met:
 *
 *  * Redistributions of source code must retain the above copyright notice,
 *    this list of conditions and the following disclaimer.
 *
 *  * Redistributions in binary form must reproduce the above copyright notice,
 *    this list of conditions and the following disclaimer in the documentation
 *    and/or other materials provided with the distribution.
 *
 * THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
 * AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
 * IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
 * ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
 * LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
 * CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
 * SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
 * INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
 * CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
 * ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/imagewm/wmcodec/wmproc"
)

var (
	applySecret     string
	applySecretFile string
	applyModality   string
	applyStrength   int
	applyText       string
	applyOutput     string
	applyMetaOut    string
)

var applyCmd = &cobra.Command{
	Use:   "apply <input.png>",
	Short: "Embed a watermark into a PNG image",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applySecret, "secret", "", "secret key (or use --secret-file)")
	applyCmd.Flags().StringVar(&applySecretFile, "secret-file", "", "file containing the secret key")
	applyCmd.Flags().StringVar(&applyModality, "modality", "invisible", "invisible, steganography, frequency, or metadata")
	applyCmd.Flags().IntVar(&applyStrength, "strength", 80, "embedding strength, 0-100")
	applyCmd.Flags().StringVar(&applyText, "text", "", "watermark text")
	applyCmd.Flags().StringVar(&applyOutput, "output", "", "output PNG path (required unless modality is metadata)")
	applyCmd.Flags().StringVar(&applyMetaOut, "metadata-output", "", "path to write the metadata sidecar JSON (metadata modality only)")
	applyCmd.MarkFlagRequired("text")
}

func runApply(cmd *cobra.Command, args []string) error {
	secret, err := readSecret(applySecret, applySecretFile)
	if err != nil {
		return err
	}

	modality := wmproc.Modality(applyModality)
	img, err := readPNG(args[0])
	if err != nil {
		return err
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	out, meta, err := wmproc.Apply(img, applyText, timestamp, secret, modality, applyStrength)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	if meta != nil {
		if applyMetaOut == "" {
			return fmt.Errorf("metadata modality requires --metadata-output")
		}
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal metadata record: %w", err)
		}
		if err := os.WriteFile(applyMetaOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", applyMetaOut, err)
		}
		log.Printf("wrote metadata sidecar to %s", applyMetaOut)
		return nil
	}

	if applyOutput == "" {
		return fmt.Errorf("--output is required for modality %q", applyModality)
	}
	if err := writePNG(applyOutput, out); err != nil {
		return err
	}
	log.Printf("wrote watermarked image to %s", applyOutput)
	return nil
}
